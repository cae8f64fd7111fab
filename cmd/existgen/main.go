// Command existgen generates existential wrapper types for Go interfaces
// annotated with //existential: directives.
package main

import (
	"fmt"
	"os"

	"github.com/lex00/existential-go/cmd"
	"github.com/lex00/existential-go/errors"
	"github.com/lex00/existential-go/logger"
)

func main() {
	root := cmd.NewExistgenCommand(cmd.NewApp(""))
	err := root.Execute()
	logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "existgen: %v\n", err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintf(os.Stderr, "\thint: %s\n", hint)
		}
		os.Exit(1)
	}
}
