package linters

import (
	"regexp"

	"github.com/odylint/odylint/api"
)

func init() {
	MustRegister(GLSL())
}

// GLSL validates shaders with glslangValidator from https://github.com/KhronosGroup/glslang.
func GLSL() *api.Adapter {
	return &api.Adapter{
		Name:        "GLSL",
		Description: "OpenGL shading language validator.",
		InstallHint: "download glslang-master-linux-Release.zip from https://github.com/KhronosGroup/glslang/releases and put bin/glslangValidator in PATH",
		Command:     []string{"glslangValidator", "${file_on_disk}"},
		Selector:    "source.glsl",
		Defaults: api.Settings{
			"args": []string{},
		},
		Pattern: regexp.MustCompile(`^ERROR:\s.*:(?P<line>\d+):\s'(?P<near>.*)'\s:\s+(?P<message>.+)`),
		Options: api.ParseOptions{
			Stream:         api.StreamStdout,
			LineBase:       1,
			ColBase:        1,
			TempFileSuffix: "-",
		},
	}
}
