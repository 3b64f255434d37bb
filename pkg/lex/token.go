// Package lex tokenizes LilyPond source text, including embedded
// Scheme, and LilyPond islands inside HTML and Texinfo documents.
//
// Lexing is line oriented: a State is fed one line of text at a time
// and yields the tokens for that line while updating itself, so a
// document can cache the state at every line boundary and re-lex only
// the lines an edit actually disturbed.
package lex

import "fmt"

// Class is a bitmask of broad token categories. A token has exactly
// one Kind but may belong to several classes; tools usually branch on
// classes and only fall back to kinds for mode-specific decisions.
type Class uint32

const (
	ClassSpace Class = 1 << iota
	ClassNewline
	ClassComment
	ClassBlockComment
	ClassString
	ClassCharacter
	ClassNumeric
	ClassError
	ClassDuration
	ClassDirection
	ClassMatchStart
	ClassMatchEnd
	ClassIndent
	ClassDedent
)

// Token is a single lexed slice of a line. Pos is a byte offset into
// the line the token came from; document code translates it to a
// document offset by adding the line's position.
type Token struct {
	Text string
	Pos  int
	Kind Kind
}

// End returns the byte offset just past the token within its line.
func (t Token) End() int { return t.Pos + len(t.Text) }

// Is reports whether the token's kind carries all the given class bits.
func (t Token) Is(c Class) bool { return t.Kind.Class()&c == c }

// IsAny reports whether the token's kind carries any of the given class bits.
func (t Token) IsAny(c Class) bool { return t.Kind.Class()&c != 0 }

// MatchName names the bracket family of a paired delimiter token, e.g.
// "slur" for both SlurStart and SlurEnd. It is empty for kinds that do
// not pair up.
func (t Token) MatchName() string { return t.Kind.MatchName() }

func (t Token) String() string {
	return fmt.Sprintf("%s(%q, %d)", t.Kind, t.Text, t.Pos)
}

// Kind identifies the exact token type. Kinds are unique across all
// lexer modes so that a token can be interpreted without knowing which
// mode produced it.
type Kind uint16

const (
	// Generic kinds shared by all modes.
	Unparsed Kind = iota
	Space
	Newline // synthesized between lines, never produced by a lexer
	Error

	// LilyPond comments and strings.
	LineComment
	BlockCommentStart
	BlockCommentEnd
	BlockCommentText
	BlockCommentSpace
	StringQuotedStart
	StringQuotedEnd
	StringText
	StringQuoteEscape

	// LilyPond music.
	Note
	Rest
	Skip
	Octave
	OctaveCheck
	AccidentalReminder
	AccidentalCautionary
	Length
	Dot
	Scaling
	TremoloColon
	TremoloDuration
	Fraction
	IntegerValue
	DecimalValue
	PipeSymbol
	VoiceSeparator
	Dynamic
	Articulation
	Direction
	ScriptAbbreviation
	Fingering
	StringNumber
	Tie
	SlurStart
	SlurEnd
	PhrasingSlurStart
	PhrasingSlurEnd
	BeamStart
	BeamEnd
	LigatureStart
	LigatureEnd
	ChordStart
	ChordEnd
	ErrorInChord
	SequentialStart
	SequentialEnd
	SimultaneousStart
	SimultaneousEnd
	OpenBracket
	CloseBracket
	OpenSimultaneous
	CloseSimultaneous

	// LilyPond commands and names.
	Keyword
	Command
	UserCommand
	Name
	ContextName
	EqualSign
	EqualSignSetOverride
	SchemeStart
	Repeat
	RepeatSpecifier
	RepeatStringSpecifier
	RepeatCount
	Override
	Revert
	DotSetOverride
	Set
	Unset
	New
	Context
	Change
	With
	Clef
	ClefSpecifier
	PitchCommand
	Unit
	Score
	Book
	BookPart
	Paper
	Header
	Layout
	Midi
	LayoutContext
	HeaderVariable
	PaperVariable
	LayoutVariable

	// Markup.
	Markup
	MarkupLines
	MarkupList
	MarkupCommand
	MarkupScore
	MarkupWord
	OpenBracketMarkup
	CloseBracketMarkup

	// Input modes.
	LyricMode
	LyricText
	LyricHyphen
	LyricExtender
	LyricSkip
	LyricTie
	NoteMode
	ChordMode
	ChordSeparator
	ChordModifier
	ChordStepNumber
	ChordDot
	DrumMode
	FigureMode

	// Scheme.
	SchemeOpenParen
	SchemeCloseParen
	SchemeQuote
	SchemeDot
	SchemeBool
	SchemeChar
	SchemeWord
	SchemeKeyword
	SchemeNumber
	SchemeFraction
	SchemeFloat
	SchemeVectorStart
	SchemeLineComment
	SchemeBlockCommentStart
	SchemeBlockCommentEnd
	SchemeBlockCommentText
	SchemeStringStart
	SchemeStringEnd
	SchemeStringText
	SchemeStringEscape
	SchemeLilyPondStart
	SchemeLilyPondEnd

	// HTML.
	HTMLCommentStart
	HTMLCommentEnd
	HTMLCommentText
	HTMLTagStart
	HTMLTagEnd
	HTMLAttrName
	HTMLEqualSign
	HTMLValue
	HTMLStringDQStart
	HTMLStringDQEnd
	HTMLStringSQStart
	HTMLStringSQEnd
	HTMLStringText
	HTMLEntityRef
	HTMLLilyPondVersionTag
	HTMLLilyPondFileTag
	HTMLLilyPondFileTagEnd
	HTMLLilyPondInlineTag
	HTMLLilyPondCloseTag
	HTMLLilyPondTagEnd
	HTMLLilyPondInlineTagEnd
	HTMLSemicolon

	// Texinfo.
	TexinfoLineComment
	TexinfoBlockCommentStart
	TexinfoBlockCommentEnd
	TexinfoBlockCommentText
	TexinfoKeyword
	TexinfoBlockStart
	TexinfoBlockEnd
	TexinfoEscapeChar
	TexinfoAccent
	TexinfoVerbatimStart
	TexinfoVerbatimEnd
	TexinfoVerbatimText
	TexinfoLilyPondBlockStart
	TexinfoLilyPondBlockStartBrace
	TexinfoLilyPondBlockEnd
	TexinfoLilyPondEnvStart
	TexinfoLilyPondEnvEnd
	TexinfoLilyPondFileStart
	TexinfoLilyPondFileStartBrace
	TexinfoLilyPondAttrStart
	TexinfoLilyPondAttrEnd
	TexinfoAttrText

	numKinds
)

type kindInfo struct {
	name  string
	class Class
	match string
}

var kindTable = [numKinds]kindInfo{
	Unparsed: {name: "Unparsed"},
	Space:    {name: "Space", class: ClassSpace},
	Newline:  {name: "Newline", class: ClassSpace | ClassNewline},
	Error:    {name: "Error", class: ClassError},

	LineComment:       {name: "LineComment", class: ClassComment},
	BlockCommentStart: {name: "BlockCommentStart", class: ClassComment | ClassBlockComment | ClassIndent | ClassMatchStart, match: "blockcomment"},
	BlockCommentEnd:   {name: "BlockCommentEnd", class: ClassComment | ClassBlockComment | ClassDedent | ClassMatchEnd, match: "blockcomment"},
	BlockCommentText:  {name: "BlockCommentText", class: ClassComment | ClassBlockComment},
	BlockCommentSpace: {name: "BlockCommentSpace", class: ClassComment | ClassBlockComment | ClassSpace},
	StringQuotedStart: {name: "StringQuotedStart", class: ClassString | ClassMatchStart, match: "string"},
	StringQuotedEnd:   {name: "StringQuotedEnd", class: ClassString | ClassMatchEnd, match: "string"},
	StringText:        {name: "StringText", class: ClassString},
	StringQuoteEscape: {name: "StringQuoteEscape", class: ClassString | ClassCharacter},

	Note:                 {name: "Note"},
	Rest:                 {name: "Rest"},
	Skip:                 {name: "Skip"},
	Octave:               {name: "Octave"},
	OctaveCheck:          {name: "OctaveCheck"},
	AccidentalReminder:   {name: "AccidentalReminder"},
	AccidentalCautionary: {name: "AccidentalCautionary"},
	Length:               {name: "Length", class: ClassDuration},
	Dot:                  {name: "Dot", class: ClassDuration},
	Scaling:              {name: "Scaling", class: ClassDuration},
	TremoloColon:         {name: "TremoloColon"},
	TremoloDuration:      {name: "TremoloDuration", class: ClassDuration},
	Fraction:             {name: "Fraction", class: ClassNumeric},
	IntegerValue:         {name: "IntegerValue", class: ClassNumeric},
	DecimalValue:         {name: "DecimalValue", class: ClassNumeric},
	PipeSymbol:           {name: "PipeSymbol"},
	VoiceSeparator:       {name: "VoiceSeparator"},
	Dynamic:              {name: "Dynamic"},
	Articulation:         {name: "Articulation"},
	Direction:            {name: "Direction", class: ClassDirection},
	ScriptAbbreviation:   {name: "ScriptAbbreviation"},
	Fingering:            {name: "Fingering"},
	StringNumber:         {name: "StringNumber"},
	Tie:                  {name: "Tie"},
	SlurStart:            {name: "SlurStart", class: ClassMatchStart, match: "slur"},
	SlurEnd:              {name: "SlurEnd", class: ClassMatchEnd, match: "slur"},
	PhrasingSlurStart:    {name: "PhrasingSlurStart", class: ClassMatchStart, match: "phrasingslur"},
	PhrasingSlurEnd:      {name: "PhrasingSlurEnd", class: ClassMatchEnd, match: "phrasingslur"},
	BeamStart:            {name: "BeamStart", class: ClassMatchStart, match: "beam"},
	BeamEnd:              {name: "BeamEnd", class: ClassMatchEnd, match: "beam"},
	LigatureStart:        {name: "LigatureStart", class: ClassMatchStart, match: "ligature"},
	LigatureEnd:          {name: "LigatureEnd", class: ClassMatchEnd, match: "ligature"},
	ChordStart:           {name: "ChordStart", class: ClassIndent | ClassMatchStart, match: "chord"},
	ChordEnd:             {name: "ChordEnd", class: ClassDedent | ClassMatchEnd, match: "chord"},
	ErrorInChord:         {name: "ErrorInChord", class: ClassError},
	SequentialStart:      {name: "SequentialStart", class: ClassIndent | ClassMatchStart, match: "bracket"},
	SequentialEnd:        {name: "SequentialEnd", class: ClassDedent | ClassMatchEnd, match: "bracket"},
	SimultaneousStart:    {name: "SimultaneousStart", class: ClassIndent | ClassMatchStart, match: "simultaneous"},
	SimultaneousEnd:      {name: "SimultaneousEnd", class: ClassDedent | ClassMatchEnd, match: "simultaneous"},
	OpenBracket:          {name: "OpenBracket", class: ClassIndent | ClassMatchStart, match: "bracket"},
	CloseBracket:         {name: "CloseBracket", class: ClassDedent | ClassMatchEnd, match: "bracket"},
	OpenSimultaneous:     {name: "OpenSimultaneous", class: ClassIndent | ClassMatchStart, match: "simultaneous"},
	CloseSimultaneous:    {name: "CloseSimultaneous", class: ClassDedent | ClassMatchEnd, match: "simultaneous"},

	Keyword:               {name: "Keyword"},
	Command:               {name: "Command"},
	UserCommand:           {name: "UserCommand"},
	Name:                  {name: "Name"},
	ContextName:           {name: "ContextName"},
	EqualSign:             {name: "EqualSign"},
	EqualSignSetOverride:  {name: "EqualSignSetOverride"},
	SchemeStart:           {name: "SchemeStart"},
	Repeat:                {name: "Repeat"},
	RepeatSpecifier:       {name: "RepeatSpecifier"},
	RepeatStringSpecifier: {name: "RepeatStringSpecifier", class: ClassString},
	RepeatCount:           {name: "RepeatCount", class: ClassNumeric},
	Override:              {name: "Override"},
	Revert:                {name: "Revert"},
	DotSetOverride:        {name: "DotSetOverride"},
	Set:                   {name: "Set"},
	Unset:                 {name: "Unset"},
	New:                   {name: "New"},
	Context:               {name: "Context"},
	Change:                {name: "Change"},
	With:                  {name: "With"},
	Clef:                  {name: "Clef"},
	ClefSpecifier:         {name: "ClefSpecifier"},
	PitchCommand:          {name: "PitchCommand"},
	Unit:                  {name: "Unit"},
	Score:                 {name: "Score"},
	Book:                  {name: "Book"},
	BookPart:              {name: "BookPart"},
	Paper:                 {name: "Paper"},
	Header:                {name: "Header"},
	Layout:                {name: "Layout"},
	Midi:                  {name: "Midi"},
	LayoutContext:         {name: "LayoutContext"},
	HeaderVariable:        {name: "HeaderVariable"},
	PaperVariable:         {name: "PaperVariable"},
	LayoutVariable:        {name: "LayoutVariable"},

	Markup:             {name: "Markup"},
	MarkupLines:        {name: "MarkupLines"},
	MarkupList:         {name: "MarkupList"},
	MarkupCommand:      {name: "MarkupCommand"},
	MarkupScore:        {name: "MarkupScore"},
	MarkupWord:         {name: "MarkupWord"},
	OpenBracketMarkup:  {name: "OpenBracketMarkup", class: ClassIndent | ClassMatchStart, match: "bracket"},
	CloseBracketMarkup: {name: "CloseBracketMarkup", class: ClassDedent | ClassMatchEnd, match: "bracket"},

	LyricMode:       {name: "LyricMode"},
	LyricText:       {name: "LyricText"},
	LyricHyphen:     {name: "LyricHyphen"},
	LyricExtender:   {name: "LyricExtender"},
	LyricSkip:       {name: "LyricSkip"},
	LyricTie:        {name: "LyricTie"},
	NoteMode:        {name: "NoteMode"},
	ChordMode:       {name: "ChordMode"},
	ChordSeparator:  {name: "ChordSeparator"},
	ChordModifier:   {name: "ChordModifier"},
	ChordStepNumber: {name: "ChordStepNumber", class: ClassNumeric},
	ChordDot:        {name: "ChordDot"},
	DrumMode:        {name: "DrumMode"},
	FigureMode:      {name: "FigureMode"},

	SchemeOpenParen:         {name: "SchemeOpenParen", class: ClassIndent | ClassMatchStart, match: "schemeparen"},
	SchemeCloseParen:        {name: "SchemeCloseParen", class: ClassDedent | ClassMatchEnd, match: "schemeparen"},
	SchemeQuote:             {name: "SchemeQuote"},
	SchemeDot:               {name: "SchemeDot"},
	SchemeBool:              {name: "SchemeBool"},
	SchemeChar:              {name: "SchemeChar", class: ClassCharacter},
	SchemeWord:              {name: "SchemeWord"},
	SchemeKeyword:           {name: "SchemeKeyword"},
	SchemeNumber:            {name: "SchemeNumber", class: ClassNumeric},
	SchemeFraction:          {name: "SchemeFraction", class: ClassNumeric},
	SchemeFloat:             {name: "SchemeFloat", class: ClassNumeric},
	SchemeVectorStart:       {name: "SchemeVectorStart", class: ClassIndent | ClassMatchStart, match: "schemeparen"},
	SchemeLineComment:       {name: "SchemeLineComment", class: ClassComment},
	SchemeBlockCommentStart: {name: "SchemeBlockCommentStart", class: ClassComment | ClassBlockComment | ClassMatchStart, match: "schemeblockcomment"},
	SchemeBlockCommentEnd:   {name: "SchemeBlockCommentEnd", class: ClassComment | ClassBlockComment | ClassMatchEnd, match: "schemeblockcomment"},
	SchemeBlockCommentText:  {name: "SchemeBlockCommentText", class: ClassComment | ClassBlockComment},
	SchemeStringStart:       {name: "SchemeStringStart", class: ClassString | ClassMatchStart, match: "string"},
	SchemeStringEnd:         {name: "SchemeStringEnd", class: ClassString | ClassMatchEnd, match: "string"},
	SchemeStringText:        {name: "SchemeStringText", class: ClassString},
	SchemeStringEscape:      {name: "SchemeStringEscape", class: ClassString | ClassCharacter},
	SchemeLilyPondStart:     {name: "SchemeLilyPondStart", class: ClassIndent | ClassMatchStart, match: "schemelily"},
	SchemeLilyPondEnd:       {name: "SchemeLilyPondEnd", class: ClassDedent | ClassMatchEnd, match: "schemelily"},

	HTMLCommentStart:         {name: "HTMLCommentStart", class: ClassComment | ClassBlockComment | ClassMatchStart, match: "htmlcomment"},
	HTMLCommentEnd:           {name: "HTMLCommentEnd", class: ClassComment | ClassBlockComment | ClassMatchEnd, match: "htmlcomment"},
	HTMLCommentText:          {name: "HTMLCommentText", class: ClassComment | ClassBlockComment},
	HTMLTagStart:             {name: "HTMLTagStart", class: ClassMatchStart, match: "htmltag"},
	HTMLTagEnd:               {name: "HTMLTagEnd", class: ClassMatchEnd, match: "htmltag"},
	HTMLAttrName:             {name: "HTMLAttrName"},
	HTMLEqualSign:            {name: "HTMLEqualSign"},
	HTMLValue:                {name: "HTMLValue"},
	HTMLStringDQStart:        {name: "HTMLStringDQStart", class: ClassString | ClassMatchStart, match: "string"},
	HTMLStringDQEnd:          {name: "HTMLStringDQEnd", class: ClassString | ClassMatchEnd, match: "string"},
	HTMLStringSQStart:        {name: "HTMLStringSQStart", class: ClassString | ClassMatchStart, match: "string"},
	HTMLStringSQEnd:          {name: "HTMLStringSQEnd", class: ClassString | ClassMatchEnd, match: "string"},
	HTMLStringText:           {name: "HTMLStringText", class: ClassString},
	HTMLEntityRef:            {name: "HTMLEntityRef", class: ClassCharacter},
	HTMLLilyPondVersionTag:   {name: "HTMLLilyPondVersionTag"},
	HTMLLilyPondFileTag:      {name: "HTMLLilyPondFileTag", class: ClassMatchStart, match: "htmltag"},
	HTMLLilyPondFileTagEnd:   {name: "HTMLLilyPondFileTagEnd", class: ClassMatchEnd, match: "htmltag"},
	HTMLLilyPondInlineTag:    {name: "HTMLLilyPondInlineTag", class: ClassMatchStart, match: "htmltag"},
	HTMLLilyPondCloseTag:     {name: "HTMLLilyPondCloseTag", class: ClassMatchEnd, match: "htmltag"},
	HTMLLilyPondTagEnd:       {name: "HTMLLilyPondTagEnd"},
	HTMLLilyPondInlineTagEnd: {name: "HTMLLilyPondInlineTagEnd"},
	HTMLSemicolon:            {name: "HTMLSemicolon"},

	TexinfoLineComment:             {name: "TexinfoLineComment", class: ClassComment},
	TexinfoBlockCommentStart:       {name: "TexinfoBlockCommentStart", class: ClassComment | ClassBlockComment | ClassMatchStart, match: "texinfocomment"},
	TexinfoBlockCommentEnd:         {name: "TexinfoBlockCommentEnd", class: ClassComment | ClassBlockComment | ClassMatchEnd, match: "texinfocomment"},
	TexinfoBlockCommentText:        {name: "TexinfoBlockCommentText", class: ClassComment | ClassBlockComment},
	TexinfoKeyword:                 {name: "TexinfoKeyword"},
	TexinfoBlockStart:              {name: "TexinfoBlockStart", class: ClassMatchStart, match: "texinfobrace"},
	TexinfoBlockEnd:                {name: "TexinfoBlockEnd", class: ClassMatchEnd, match: "texinfobrace"},
	TexinfoEscapeChar:              {name: "TexinfoEscapeChar", class: ClassCharacter},
	TexinfoAccent:                  {name: "TexinfoAccent", class: ClassCharacter},
	TexinfoVerbatimStart:           {name: "TexinfoVerbatimStart", class: ClassMatchStart, match: "texinfoverbatim"},
	TexinfoVerbatimEnd:             {name: "TexinfoVerbatimEnd", class: ClassMatchEnd, match: "texinfoverbatim"},
	TexinfoVerbatimText:            {name: "TexinfoVerbatimText"},
	TexinfoLilyPondBlockStart:      {name: "TexinfoLilyPondBlockStart", class: ClassMatchStart, match: "texinfolily"},
	TexinfoLilyPondBlockStartBrace: {name: "TexinfoLilyPondBlockStartBrace"},
	TexinfoLilyPondBlockEnd:        {name: "TexinfoLilyPondBlockEnd", class: ClassMatchEnd, match: "texinfolily"},
	TexinfoLilyPondEnvStart:        {name: "TexinfoLilyPondEnvStart", class: ClassMatchStart, match: "texinfolily"},
	TexinfoLilyPondEnvEnd:          {name: "TexinfoLilyPondEnvEnd", class: ClassMatchEnd, match: "texinfolily"},
	TexinfoLilyPondFileStart:       {name: "TexinfoLilyPondFileStart"},
	TexinfoLilyPondFileStartBrace:  {name: "TexinfoLilyPondFileStartBrace"},
	TexinfoLilyPondAttrStart:       {name: "TexinfoLilyPondAttrStart"},
	TexinfoLilyPondAttrEnd:         {name: "TexinfoLilyPondAttrEnd"},
	TexinfoAttrText:                {name: "TexinfoAttrText"},
}

// Class returns the class bits of the kind.
func (k Kind) Class() Class {
	if k < numKinds {
		return kindTable[k].class
	}
	return 0
}

// MatchName names the kind's bracket family, or "" if unpaired.
func (k Kind) MatchName() string {
	if k < numKinds {
		return kindTable[k].match
	}
	return ""
}

func (k Kind) String() string {
	if k < numKinds && kindTable[k].name != "" {
		return kindTable[k].name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}
