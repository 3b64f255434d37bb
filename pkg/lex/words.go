package lex

// Word tables driving the keyword, music command, articulation,
// context and variable matchers. The lexer only tests membership, so
// everything that does not need alternation order is a set.

func wordSet(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

// Keywords that are not music commands.
var lilypondKeywords = wordSet(
	"accepts", "alias", "book", "bookpart", "consists", "context",
	"defaultchild", "denies", "description", "etc", "header", "hide",
	"include", "inherit-acceptability", "language", "layout", "midi", "name",
	"omit", "once", "override", "paper", "remove", "revert",
	"score", "set", "tagGroup", "temporary", "type", "undo",
	"unset", "version", "with",
)

var lilypondMusicCommands = wordSet(
	"absolute", "acciaccatura", "accidentalStyle", "addChordShape", "addInstrumentDefinition", "addlyrics",
	"addQuote", "after", "afterGrace", "aikenHeads", "aikenHeadsMinor", "aikenThinHeads",
	"aikenThinHeadsMinor", "allowBreak", "allowPageTurn", "allowVoltaHook", "alterBroken", "alternative",
	"ambitusAfter", "appendToTag", "applyContext", "applyMusic", "applyOutput", "appoggiatura",
	"arabicStringNumbers", "arpeggio", "arpeggioArrowDown", "arpeggioArrowUp", "arpeggioBracket", "arpeggioNormal",
	"arpeggioParenthesis", "arpeggioParenthesisDashed", "ascendens", "assertBeamQuant", "assertBeamSlope", "auctum",
	"aug", "augmentum", "autoAccidentals", "autoBeamOff", "autoBeamOn", "autoBreaksOff",
	"autoBreaksOn", "autoChange", "autoLineBreaksOff", "autoLineBreaksOn", "autoPageBreaksOff", "autoPageBreaksOn",
	"balloonGrobText", "balloonLengthOff", "balloonLengthOn", "balloonText", "bar", "barNumberCheck",
	"bassFigureExtendersOff", "bassFigureExtendersOn", "bassFigureStaffAlignmentDown", "bassFigureStaffAlignmentNeutral", "bassFigureStaffAlignmentUp", "beamExceptions",
	"bendAfter", "bendHold", "bendStartLevel", "blackTriangleMarkup", "bookOutputName", "bookOutputSuffix",
	"bracketCloseSymbol", "bracketOpenSymbol", "break", "breathe", "breve", "cadenzaOff",
	"cadenzaOn", "caesura", "cavum", "change", "chordmode", "chordRepeats",
	"chords", "clef", "cm", "compoundMeter", "compressEmptyMeasures", "compressMMRests",
	"context", "cr", "cresc", "crescHairpin", "crescTextCresc", "crossStaff",
	"cueClef", "cueClefUnset", "cueDuring", "cueDuringWithClef", "dashBar", "dashDash",
	"dashDot", "dashHat", "dashLarger", "dashPlus", "dashUnderscore", "deadNote",
	"deadNotesOff", "deadNotesOn", "decr", "default", "defaultNoteHeads", "defaultTimeSignature",
	"defineBarLine", "deminutum", "denies", "deprecatedcresc", "deprecateddim", "deprecatedendcresc",
	"deprecatedenddim", "descendens", "dim", "dimHairpin", "dimTextDecr", "dimTextDecresc",
	"dimTextDim", "displayLilyMusic", "displayMusic", "displayScheme", "divisioMaior", "divisioMaxima",
	"divisioMinima", "dotsDown", "dotsNeutral", "dotsUp", "dropNote", "drummode",
	"drumPitchTable", "drums", "dynamicDown", "dynamicNeutral", "dynamicUp", "easyHeadsOff",
	"easyHeadsOn", "enablePolymeter", "endcr", "endcresc", "enddecr", "enddim",
	"endincipit", "endSkipNCs", "endSpanners", "episemFinis", "episemInitium", "escapedBiggerSymbol",
	"escapedExclamationSymbol", "escapedParenthesisCloseSymbol", "escapedParenthesisOpenSymbol", "escapedSmallerSymbol", "eventChords", "expandEmptyMeasures",
	"expandFullBarRests", "f", "featherDurations", "fermataMarkup", "ff", "fff",
	"ffff", "fffff", "figuremode", "figures", "finalis", "fine",
	"finger", "fingeringOrientations", "fixed", "flexa", "footnote", "fp",
	"frenchChords", "fullJazzExceptions", "funkHeads", "funkHeadsMinor", "fz", "germanChords",
	"glissando", "grace", "graceSettings", "grobdescriptions", "harmonic", "harmonicByFret",
	"harmonicByRatio", "harmonicNote", "harmonicsOff", "harmonicsOn", "hideNotes", "hideSplitTiedTabNotes",
	"hideStaffSwitch", "huge", "ignatzekExceptionMusic", "ignatzekExceptions", "iij", "IIJ",
	"ij", "IJ", "improvisationOff", "improvisationOn", "in", "incipit",
	"inclinatum", "includePageLayoutFile", "indent", "inStaffSegno", "instrumentSwitch", "instrumentTransposition",
	"interscoreline", "inversion", "invertChords", "italianChords", "jump", "keepWithTag",
	"key", "kievanOff", "kievanOn", "killCues", "label", "laissezVibrer",
	"languageRestore", "languageSaveAndChange", "large", "ligature", "linea", "longa",
	"lyricmode", "lyrics", "lyricsto", "magnifyMusic", "magnifyStaff", "maininput",
	"maj", "majorSevenSymbol", "makeClusters", "makeDefaultStringTuning", "mark", "markLengthOff",
	"markLengthOn", "markup", "markuplines", "markuplist", "markupMap", "maxima",
	"medianChordGridStyle", "melisma", "melismaEnd", "mergeDifferentlyDottedOff", "mergeDifferentlyDottedOn", "mergeDifferentlyHeadedOff",
	"mergeDifferentlyHeadedOn", "mf", "mm", "modalInversion", "modalTranspose", "mp",
	"musicMap", "neumeDemoLayout", "new", "newSpacingSection", "noBeam", "noBreak",
	"noPageBreak", "noPageTurn", "normalsize", "notemode", "numericTimeSignature", "octaveCheck",
	"offset", "oldaddlyrics", "oneVoice", "oriscus", "ottava", "override",
	"overrideProperty", "overrideTimeSignatureSettings", "p", "pageBreak", "pageTurn", "palmMute",
	"palmMuteOff", "palmMuteOn", "parallelMusic", "parenthesisCloseSymbol", "parenthesisOpenSymbol", "parenthesize",
	"partCombine", "partCombineApart", "partCombineAutomatic", "partCombineChords", "partCombineDown", "partCombineForce",
	"partCombineListener", "partCombineSoloI", "partCombineSoloII", "partCombineUnisono", "partCombineUp", "partial",
	"partialJazzExceptions", "partialJazzMusic", "pes", "phrasingSlurDashed", "phrasingSlurDashPattern", "phrasingSlurDotted",
	"phrasingSlurDown", "phrasingSlurHalfDashed", "phrasingSlurHalfSolid", "phrasingSlurNeutral", "phrasingSlurSolid", "phrasingSlurUp",
	"pipeSymbol", "pitchedTrill", "pointAndClickOff", "pointAndClickOn", "pointAndClickTypes", "pp",
	"ppp", "pppp", "ppppp", "preBend", "preBendHold", "predefinedFretboardsOff",
	"predefinedFretboardsOn", "propertyOverride", "propertyRevert", "propertySet", "propertyTweak", "propertyUnset",
	"pt", "pushToTag", "quilisma", "quoteDuring", "raiseNote", "reduceChords",
	"relative", "RemoveEmptyRhythmicStaffContext", "RemoveEmptyStaffContext", "removeWithTag", "repeat", "repeatTie",
	"resetRelativeOctave", "responsum", "rest", "retrograde", "revert", "revertTimeSignatureSettings",
	"rfz", "rightHandFinger", "romanStringNumbers", "sacredHarpHeads", "sacredHarpHeadsMinor", "scaleDurations",
	"scoreTweak", "section", "sectionLabel", "segnoMark", "semiGermanChords", "set",
	"setDefaultDurationToQuarter", "settingsFrom", "sf", "sff", "sfp", "sfz",
	"shape", "shiftDurations", "shiftOff", "shiftOn", "shiftOnn", "shiftOnnn",
	"showSplitTiedTabNotes", "showStaffSwitch", "single", "skip", "skipNC", "skipNCs",
	"skipTypesetting", "slashedGrace", "slurDashed", "slurDashPattern", "slurDotted", "slurDown",
	"slurHalfDashed", "slurHalfSolid", "slurNeutral", "slurSolid", "slurUp", "small",
	"sostenutoOff", "sostenutoOn", "southernHarmonyHeads", "southernHarmonyHeadsMinor", "sp", "spacingTweaks",
	"spp", "staff-space", "staffHighlight", "startAcciaccaturaMusic", "startAppoggiaturaMusic", "startGraceMusic",
	"startGroup", "startMeasureCount", "startMeasureSpanner", "startSlashedGraceMusic", "startStaff", "startTextSpan",
	"startTrillSpan", "stemDown", "stemNeutral", "stemUp", "stopAcciaccaturaMusic", "stopAppoggiaturaMusic",
	"stopGraceMusic", "stopGroup", "stopMeasureCount", "stopMeasureSpanner", "stopSlashedGraceMusic", "stopStaff",
	"stopStaffHighlight", "stopTextSpan", "stopTrillSpan", "storePredefinedDiagram", "stringTuning", "strokeFingerOrientations",
	"stropha", "styledNoteHeads", "sustainOff", "sustainOn", "tabChordRepeats", "tabChordRepetition",
	"tabFullNotation", "tag", "teeny", "tempo", "tempoWholesPerMinute", "textEndMark",
	"textLengthOff", "textLengthOn", "textMark", "textSpannerDown", "textSpannerNeutral", "textSpannerUp",
	"tieDashed", "tieDashPattern", "tieDotted", "tieDown", "tieHalfDashed", "tieHalfSolid",
	"tieNeutral", "tieSolid", "tieUp", "tildeSymbol", "time", "times",
	"timing", "tiny", "tocItem", "transpose", "transposedCueDuring", "transposition",
	"treCorde", "tuplet", "tupletDown", "tupletNeutral", "tupletSpan", "tupletUp",
	"tweak", "unaCorda", "unfolded", "unfoldRepeats", "unHideNotes", "unit",
	"unset", "versus", "virga", "virgula", "voiceFour", "voiceFourStyle",
	"voiceNeutralStyle", "voiceOne", "voiceOneStyle", "voices", "voiceThree", "voiceThreeStyle",
	"voiceTwo", "voiceTwoStyle", "void", "vshape", "walkerHeads", "walkerHeadsMinor",
	"whiteTriangleMarkup", "withMusicProperty", "xNote", "xNotesOff", "xNotesOn",
)

// Scripts that can follow a note: articulations, ornaments, fermatas, instrument, repeat and ancient scripts.
var articulationWords = wordSet(
	"accent", "espressivo", "marcato", "portato", "staccatissimo", "staccato",
	"tenuto", "downmordent", "downprall", "lineprall", "mordent", "prall",
	"pralldown", "prallmordent", "prallprall", "prallup", "reverseturn", "trill",
	"turn", "upmordent", "upprall", "fermata", "longfermata", "shortfermata",
	"verylongfermata", "downbow", "flageolet", "halfopen", "lheel", "ltoe",
	"open", "rheel", "rtoe", "snappizzicato", "stopped", "thumb",
	"upbow", "coda", "segno", "varcoda", "accentus", "circulus",
	"ictus", "semicirculus", "signumcongruentiae",
)

// Spelled-out dynamic marks; \< \! and \> are matched separately.
var dynamicWords = wordSet(
	"f", "ff", "fff", "ffff", "fffff", "p",
	"pp", "ppp", "pppp", "ppppp", "mf", "mp",
	"fp", "sp", "spp", "sf", "sff", "sfz",
	"rfz", "cresc", "decresc", "dim", "cr", "decr",
)

var contextNames = wordSet(
	"ChoirStaff", "ChordGrid", "ChordGridScore", "ChordNames", "CueVoice", "Devnull",
	"DrumStaff", "DrumVoice", "Dynamics", "FiguredBass", "FretBoards", "Global",
	"GrandStaff", "GregorianTranscriptionLyrics", "GregorianTranscriptionStaff", "GregorianTranscriptionVoice", "InternalGregorianStaff", "KievanStaff",
	"KievanVoice", "Lyrics", "MensuralStaff", "MensuralVoice", "NoteNames", "NullVoice",
	"OneStaff", "PetrucciStaff", "PetrucciVoice", "PianoStaff", "RhythmicStaff", "Score",
	"Staff", "StaffGroup", "StandaloneRhythmScore", "StandaloneRhythmStaff", "StandaloneRhythmVoice", "TabStaff",
	"TabVoice", "Timing", "VaticanaLyrics", "VaticanaStaff", "VaticanaVoice", "Voice",
)

var headerVariables = wordSet(
	"arranger", "breakbefore", "composer", "copyright", "date", "dedication",
	"enteredby", "footer", "instrument", "lastupdated", "maintainer", "maintainerEmail",
	"maintainerWeb", "meter", "moreInfo", "mutopiacomposer", "mutopiainstrument", "mutopiaopus",
	"mutopiapoet", "mutopiatitle", "opus", "piece", "poet", "source",
	"style", "subsubtitle", "subtitle", "tagline", "texidoc", "title",
)

var paperVariables = []string{
	"paper-height", "top-margin", "bottom-margin", "ragged-bottom", "ragged-last-bottom",
	"paper-width", "line-width", "left-margin", "right-margin", "check-consistency",
	"ragged-right", "ragged-last", "two-sided", "inner-margin", "outer-margin",
	"binding-offset", "horizontal-shift", "indent", "short-indent", "markup-system-spacing",
	"score-markup-spacing", "score-system-spacing", "system-system-spacing", "markup-markup-spacing", "last-bottom-spacing",
	"top-system-spacing", "top-markup-spacing", "max-systems-per-page", "min-systems-per-page", "system-count",
	"systems-per-page", "blank-after-score-page-force", "blank-last-page-force", "blank-page-force", "page-breaking",
	"page-breaking-system-system-spacing", "page-count", "auto-first-page-number", "first-page-number", "print-first-page-number",
	"print-page-number", "footnote-separator-markup", "page-spacing-weight", "print-all-headers", "system-separator-markup",
	"annotate-spacing", "bookTitleMarkup", "evenFooterMarkup", "evenHeaderMarkup", "oddFooterMarkup",
	"oddHeaderMarkup", "scoreTitleMarkup", "tocItemMarkup", "tocTitleMarkup", "fonts",
}

var layoutVariables = []string{
	"indent", "line-width", "ragged-last", "ragged-right", "short-indent",
	"system-count",
}

var repeatTypes = wordSet(
	"percent", "segno", "tremolo", "unfold", "volta",
)

// Clef names accepted after \clef without quotes.
var plainClefs = []string{
	"alto", "altovarC", "baritone", "baritonevarC", "baritonevarF",
	"bass", "blackmensural-c1", "blackmensural-c2", "blackmensural-c3", "blackmensural-c4",
	"blackmensural-c5", "C", "F", "french", "G",
	"GG", "G2", "hufnagel-do-fa", "hufnagel-do1", "hufnagel-do2",
	"hufnagel-do3", "hufnagel-fa1", "hufnagel-fa2", "kievan-do", "medicaea-do1",
	"medicaea-do2", "medicaea-do3", "medicaea-fa1", "medicaea-fa2", "mensural-c1",
	"mensural-c2", "mensural-c3", "mensural-c4", "mensural-c5", "mensural-f",
	"mensural-g", "mezzosoprano", "moderntab", "neomensural-c1", "neomensural-c2",
	"neomensural-c3", "neomensural-c4", "neomensural-c5", "percussion", "petrucci-c1",
	"petrucci-c2", "petrucci-c3", "petrucci-c4", "petrucci-c5", "petrucci-f",
	"petrucci-f2", "petrucci-f3", "petrucci-f4", "petrucci-f5", "petrucci-g",
	"petrucci-g1", "petrucci-g2", "soprano", "subbass", "tab",
	"tenor", "tenorG", "tenorvarC", "treble", "varbaritone",
	"varC", "varpercussion", "vaticana-do1", "vaticana-do2", "vaticana-do3",
	"vaticana-fa1", "vaticana-fa2", "violin",
}

// Markup commands taking no argument.
var markupCommandsNoArgs = wordSet(
	"coda", "doubleflat", "doublesharp", "eyeglasses", "fermata", "flat",
	"natural", "null", "segno", "semiflat", "semisharp", "sesquiflat",
	"sesquisharp", "sharp", "strut", "table-of-contents", "varcoda",
)

// Markup commands taking more than one argument; anything else
// not listed in markupCommandsNoArgs takes a single argument.
var markupCommandArgCount = map[string]int{
	"abs-fontsize": 2,
	"auto-footnote": 2,
	"combine": 2,
	"customTabClef": 2,
	"fontsize": 2,
	"footnote": 2,
	"fraction": 2,
	"halign": 2,
	"hcenter-in": 2,
	"if": 2,
	"lower": 2,
	"magnify": 2,
	"note": 2,
	"on-the-fly": 2,
	"override": 2,
	"pad-around": 2,
	"pad-markup": 2,
	"pad-x": 2,
	"page-link": 2,
	"path": 2,
	"raise": 2,
	"replace": 2,
	"rest-by-number": 2,
	"rotate": 2,
	"scale": 2,
	"translate": 2,
	"translate-scaled": 2,
	"unless": 2,
	"with-color": 2,
	"with-dimensions-from": 2,
	"with-link": 2,
	"with-outline": 2,
	"with-string-transformer": 2,
	"with-true-dimension": 2,
	"with-url": 2,
	"woodwind-diagram": 2,
	"arrow-head": 3,
	"beam": 3,
	"draw-circle": 3,
	"draw-squiggle-line": 3,
	"epsfile": 3,
	"filled-box": 3,
	"general-align": 3,
	"note-by-number": 3,
	"pad-to-box": 3,
	"page-ref": 3,
	"with-dimension": 3,
	"with-dimension-from": 3,
	"with-dimensions": 3,
	"pattern": 4,
	"put-adjacent": 4,
	"align-on-other": 5,
	"fill-with-pattern": 5,
}

// Core Scheme syntactic keywords, used to refine Word tokens.
var schemeKeywords = wordSet(
	"define", "define*", "define-syntax", "define-macro", "define-module", "define-public",
	"lambda", "lambda*", "let", "let*", "letrec", "letrec*",
	"if", "cond", "case", "else", "when", "unless",
	"begin", "and", "or", "not", "set!", "quote",
	"quasiquote", "unquote", "unquote-splicing", "do", "delay", "syntax-rules",
	"use-modules",
)
