package config

import (
	"path/filepath"
	"strings"
)

var (
	// AppName is used in generating file system paths.
	AppName = "gnvmr"

	// DefaultVMRURL redirects to the current release of the VMR spreadsheet.
	DefaultVMRURL = "https://ictv.global/vmr/current"
)

// Working directory layout.
const (
	// SourceFile is the local copy of the VMR spreadsheet.
	SourceFile = "current_VMR.xlsx"
	// TableFile is the canonical tab-separated table.
	TableFile = "current_VMR.tsv"
	// FlaggedFile is the append-only log of suspect GenBank files.
	FlaggedFile = "flagged.txt"
	// DataDir contains one directory per record named by its Sort id.
	DataDir = "Data"
	// AccessionsFile lists normalized accessions of a record, one per line.
	AccessionsFile = "accessions.txt"
	// OutputDir keeps GenBank files of a record.
	OutputDir = "GenBank"
	// OutputExt is the extension of GenBank files.
	OutputExt = ".gb"
	// ScriptFile reproduces the retrieval of a record from a shell.
	ScriptFile = "download_genbank.sh"

	// AccessionPlaceholder in retrieval arguments is replaced by an
	// accession.
	AccessionPlaceholder = "{accession}"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/gnvmr by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/gnvmr/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/gnvmr/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// SourcePath returns the path of the VMR spreadsheet in a working directory.
func SourcePath(workDir string) string {
	return filepath.Join(workDir, SourceFile)
}

// TablePath returns the path of the canonical table in a working directory.
func TablePath(workDir string) string {
	return filepath.Join(workDir, TableFile)
}

// FlaggedPath returns the path of the flagged files log.
func FlaggedPath(workDir string) string {
	return filepath.Join(workDir, FlaggedFile)
}

// DataPath returns the path of the records root directory.
func DataPath(workDir string) string {
	return filepath.Join(workDir, DataDir)
}

// OutputName returns the GenBank file name of an accession. Path
// separators are replaced, so the file always stays inside its directory.
func OutputName(id string) string {
	id = strings.ReplaceAll(id, "/", "_")
	id = strings.ReplaceAll(id, string(filepath.Separator), "_")
	return id + OutputExt
}
