// internal/highlighter/languages.go
package highlighter

import (
	"embed"

	"github.com/bethropolis/tidelex/internal/highlighter/lang"
	"github.com/bethropolis/tidelex/internal/logger"
)

//go:embed rules/*.toml
var embeddedRules embed.FS

// DefaultLanguage is used when a file extension is not recognized.
const DefaultLanguage = "Kotlin"

// RegisterLanguages installs the built-in rule sets into the lang registry.
func RegisterLanguages() {
	if lang.RulesFS == nil {
		logger.Debugf("RegisterLanguages: Setting lang.RulesFS")
		lang.RulesFS = embeddedRules
	}

	logger.Debugf("Registering languages...")

	lang.Register(&lang.Language{
		Name:       "Java",
		Extensions: []string{".java"},
		RulesPath:  "java",
		CheckStyle: "semicolon",
	})

	lang.Register(&lang.Language{
		Name:       "Kotlin",
		Extensions: []string{".kt", ".kts"},
		RulesPath:  "kotlin",
		CheckStyle: "advisory",
	})

	lang.Register(&lang.Language{
		Name:       "Python",
		Extensions: []string{".py", ".pyw"},
		RulesPath:  "python",
		CheckStyle: "colon",
	})

	lang.Register(&lang.Language{
		Name:       "C",
		Extensions: []string{".c", ".h"},
		RulesPath:  "c",
		CheckStyle: "semicolon",
	})

	lang.Register(&lang.Language{
		Name:       "C++",
		Extensions: []string{".cpp", ".cc", ".cxx", ".hpp"},
		RulesPath:  "cpp",
		CheckStyle: "semicolon",
	})

	logger.Debugf("Registration complete. Registered %d languages.", len(lang.GetAll()))
}
