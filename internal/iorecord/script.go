package iorecord

import (
	"strings"

	"github.com/gnames/gnvmr/pkg/config"
)

// Script renders a POSIX shell script that retrieves GenBank files of the
// given accessions with the retrieval pipeline. It is run from the record
// directory.
func Script(pipeline []config.StageConfig, ids []string) string {
	var sb strings.Builder
	sb.WriteString("#!/bin/sh\n")
	sb.WriteString("cd \"$(dirname \"$0\")/" + config.OutputDir + "\" || exit 1\n")

	for _, id := range ids {
		stages := make([]string, len(pipeline))
		for i, st := range pipeline {
			words := []string{shellQuote(st.Exec)}
			for _, arg := range st.Args {
				arg = strings.ReplaceAll(arg, config.AccessionPlaceholder, id)
				words = append(words, shellQuote(arg))
			}
			stages[i] = strings.Join(words, " ")
		}
		sb.WriteString(strings.Join(stages, " | "))
		sb.WriteString(" > " + shellQuote(config.OutputName(id)) + "\n")
	}
	return sb.String()
}

// shellQuote leaves simple words as is and wraps everything else in single
// quotes.
func shellQuote(s string) string {
	if s != "" && strings.IndexFunc(s, unsafeRune) < 0 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func unsafeRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	case strings.ContainsRune("-_.,/:=+@%", r):
		return false
	}
	return true
}
