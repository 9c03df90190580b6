package res

import _ "embed"

//go:embed themes/default.toml
var DefaultThemeToml []byte
