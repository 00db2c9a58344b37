// Package catalog holds the static learning catalog: the module cards shown
// on the learning grid and the level/language choices of the practice zone.
// Everything here is a process-wide constant; nothing is mutated at runtime.
package catalog

// Module is one card on the learning-module grid. Icon is a terminal glyph
// standing in for the original artwork; Color is a hex foreground for it.
type Module struct {
	Name  string
	Icon  string
	Color string
}

// Modules is the fixed catalog. Order matters: it is the display order.
var Modules = []Module{
	{Name: "C", Icon: "©", Color: "#5C6BC0"},
	{Name: "Python", Icon: "🐍", Color: "#FFD43B"},
	{Name: "Java", Icon: "☕", Color: "#E76F00"},
	{Name: "C#", Icon: "♯", Color: "#68217A"},
	{Name: "Kotlin", Icon: "◆", Color: "#7F52FF"},
	{Name: "JavaScript", Icon: "JS", Color: "#F7DF1E"},
	{Name: "Node.js", Icon: "⬢", Color: "#539E43"},
	{Name: "React.js", Icon: "⚛", Color: "#61DAFB"},
	{Name: "MySQL", Icon: "🐬", Color: "#00758F"},
}

// Level is the learner's self-chosen difficulty.
type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
)

// Levels in display order.
var Levels = []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}

// Language is a language the practice zone can generate questions for.
// A subset of the module catalog: only languages the code evaluator handles
// well are offered.
type Language string

const (
	LanguageC          Language = "C"
	LanguagePython     Language = "Python"
	LanguageJava       Language = "Java"
	LanguageCSharp     Language = "C#"
	LanguageJavaScript Language = "JavaScript"
)

// Languages in display order.
var Languages = []Language{
	LanguageC,
	LanguagePython,
	LanguageJava,
	LanguageCSharp,
	LanguageJavaScript,
}
