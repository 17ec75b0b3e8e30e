package cst

// TokenType classifies a lexical token. The vocabulary follows the ABC
// scanner's external token set, trimmed to the classes the editing layer
// distinguishes.
type TokenType int

const (
	TokAccidental TokenType = iota
	TokNoteLetter
	TokOctave
	TokRest
	TokTie
	TokDecoration
	TokSlur
	TokBarline

	TokRhyNumer
	TokRhyDenom
	TokRhySep
	TokRhyBroken
	TokTupletMarker

	TokChordLeftBracket
	TokChordRightBracket
	TokGraceLeftBrace
	TokGraceRightBrace
	TokGraceSlash
	TokInlineLeftBracket
	TokInlineRightBracket

	TokAnnotation
	TokInfoHeader
	TokInfoString
	TokVoiceOverlay
	TokLineContinuation

	TokSymbol
	TokChordSymbol
	TokYSpacer

	TokIdentifier
	TokNumber
	TokReservedChar
	TokEscapedChar

	TokComment
	TokWS
	TokEOL
	TokFreeText
	TokSectionBreak
	TokInvalid
	TokEOF
)

var tokenTypeNames = map[TokenType]string{
	TokAccidental:         "ACCIDENTAL",
	TokNoteLetter:         "NOTE_LETTER",
	TokOctave:             "OCTAVE",
	TokRest:               "REST",
	TokTie:                "TIE",
	TokDecoration:         "DECORATION",
	TokSlur:               "SLUR",
	TokBarline:            "BARLINE",
	TokRhyNumer:           "RHY_NUMER",
	TokRhyDenom:           "RHY_DENOM",
	TokRhySep:             "RHY_SEP",
	TokRhyBroken:          "RHY_BRKN",
	TokTupletMarker:       "TUPLET",
	TokChordLeftBracket:   "CHRD_LEFT_BRKT",
	TokChordRightBracket:  "CHRD_RIGHT_BRKT",
	TokGraceLeftBrace:     "GRC_GRP_LEFT_BRACE",
	TokGraceRightBrace:    "GRC_GRP_RGHT_BRACE",
	TokGraceSlash:         "GRC_GRP_SLSH",
	TokInlineLeftBracket:  "INLN_FLD_LFT_BRKT",
	TokInlineRightBracket: "INLN_FLD_RGT_BRKT",
	TokAnnotation:         "ANNOTATION",
	TokInfoHeader:         "INF_HDR",
	TokInfoString:         "INFO_STR",
	TokVoiceOverlay:       "VOICE_OVRLAY",
	TokLineContinuation:   "LINE_CONT",
	TokSymbol:             "SYMBOL",
	TokChordSymbol:        "CHORD_SYMBOL",
	TokYSpacer:            "Y_SPC",
	TokIdentifier:         "IDENTIFIER",
	TokNumber:             "NUMBER",
	TokReservedChar:       "RESERVED_CHAR",
	TokEscapedChar:        "ESCAPED_CHAR",
	TokComment:            "COMMENT",
	TokWS:                 "WS",
	TokEOL:                "EOL",
	TokFreeText:           "FREE_TXT",
	TokSectionBreak:       "SCT_BRK",
	TokInvalid:            "INVALID",
	TokEOF:                "EOF",
}

func (t TokenType) String() string {
	if name, ok := tokenTypeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}
