package config

import (
	"strings"

	gotoml "github.com/pelletier/go-toml/v2"
)

const configHeader = `# typereg settings
#
# Uncomment and edit values to change registry behavior. Bindings map
# qualified subject names to handler names registered in the catalog:
#
# [bindings]
# "report.Invoice" = "render.InvoiceRenderer"
`

// GenerateConfigContent generates a settings file with the default
// values present but commented out.
func GenerateConfigContent() (string, error) {
	defaults := Settings{
		Scope:           "singleton",
		SubjectFallback: true,
	}

	raw, err := gotoml.Marshal(defaults)
	if err != nil {
		return "", err
	}

	return configHeader + "\n" + commentOutConfigValues(string(raw)), nil
}

// commentOutConfigValues comments out all non-comment, non-blank lines
// that contain configuration values, keeping section headers as-is.
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	var result []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			result = append(result, line)
			continue
		}

		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			result = append(result, line)
			continue
		}

		result = append(result, "# "+line)
	}

	return strings.Join(result, "\n")
}
