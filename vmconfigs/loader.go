package vmconfigs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/reusee/intcode/configs"
	"github.com/reusee/intcode/logs"
)

//go:embed schema.cue
var schema string

var configFilenames = []string{
	"intcode.cue",
	".intcode.cue",
}

// ConfigFiles lists existing config files, most specific first.
type ConfigFiles []string

func (Module) ConfigFiles() ConfigFiles {
	var paths []string

	// working directory
	workingDir, err := os.Getwd()
	if err == nil {
		paths = append(paths, findConfigFiles(workingDir)...)
	}

	// user config dir
	configDir, err := os.UserConfigDir()
	if err == nil {
		paths = append(paths, findConfigFiles(configDir)...)
	}

	// system wide dir
	paths = append(paths, findConfigFiles("/etc")...)

	return paths
}

func findConfigFiles(dir string) (ret []string) {
	for _, filename := range configFilenames {
		path := filepath.Join(dir, filename)
		if _, err := os.Stat(path); err == nil {
			ret = append(ret, path)
		}
	}
	return
}

func (Module) ConfigsLoader(
	logger logs.Logger,
	files ConfigFiles,
) configs.Loader {
	if len(files) > 0 {
		logger.Info("config file",
			"paths", []string(files),
		)
	}
	return configs.NewLoader(files, schema)
}
