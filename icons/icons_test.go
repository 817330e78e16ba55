package icons

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestForPathDirectory(t *testing.T) {
	assert := assert.New(t)

	icon, color := ForPath("src", true)
	assert.NotEmpty(icon)
	assert.Equal(lipgloss.Color("4"), color)

	// All directories share the same glyph regardless of name.
	icon2, _ := ForPath("node_modules", true)
	assert.Equal(icon, icon2)
}

func TestForPathUsesBaseName(t *testing.T) {
	assert := assert.New(t)

	icon, color := ForPath("main.go", false)
	nested, nestedColor := ForPath("cmd/app/main.go", false)
	assert.Equal(icon, nested)
	assert.Equal(color, nestedColor)

	mod, _ := ForPath("go.mod", false)
	nestedMod, _ := ForPath("sub/go.mod", false)
	assert.Equal(mod, nestedMod)
}

func TestForPathExtensionAliases(t *testing.T) {
	assert := assert.New(t)

	yaml, _ := ForPath("config.yaml", false)
	yml, _ := ForPath("config.yml", false)
	assert.Equal(yaml, yml)

	sh, _ := ForPath("run.sh", false)
	bash, _ := ForPath("run.bash", false)
	assert.Equal(sh, bash)

	ts, _ := ForPath("app.ts", false)
	tsx, _ := ForPath("app.tsx", false)
	assert.Equal(ts, tsx)
}

func TestForPathUnknown(t *testing.T) {
	assert := assert.New(t)

	a, aColor := ForPath("data.xyz", false)
	b, bColor := ForPath("noextension", false)
	assert.Equal(a, b)
	assert.Equal(aColor, bColor)
	assert.NotEmpty(a)
}
