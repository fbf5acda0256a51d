package utils

import (
	"fmt"
	"io"
	"os"
	"text/template"
)

// ExecuteWriteTemplateFile compiles a template file, executes it over
// data and writes the output into a stream.
func ExecuteWriteTemplateFile(w io.Writer, data interface{}, filePath string) error {
	tplStr, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("Error trying to read %s file: %v", filePath, err)
	}
	tpl, err := template.New("template").Parse(string(tplStr))
	if err != nil {
		return fmt.Errorf("Error trying to parse template document: %v", err)
	}
	err = tpl.Execute(w, data)
	if err != nil {
		return fmt.Errorf("Error executing template: %v\n", err)
	}

	return nil
}
