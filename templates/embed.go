// Package templates embeds the HTML layout, stylesheet and JSON assets used
// by the renderer and validators.
package templates

import _ "embed"

//go:embed layout.html
var LayoutHTML string

//go:embed style.css
var StyleCSS string

// ResumeSchema is the JSON schema of a built resume document.
//
//go:embed resume.schema.json
var ResumeSchema string

// SkillsJSON is the default skill taxonomy.
//
//go:embed skills.json
var SkillsJSON []byte

//go:embed skills.schema.json
var SkillsSchema string
