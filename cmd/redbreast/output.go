package main

import (
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

func renderSuccessLine(message string, colorize bool) string {
	if colorize {
		return text.FgGreen.Sprint(message)
	}
	return message
}

func renderErrorLine(message string, colorize bool) string {
	if colorize {
		return text.FgRed.Sprint(message)
	}
	return message
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
