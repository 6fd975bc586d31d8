package util

// Character code constants used by the lexers
const (
	CharEOF       = 0
	CharTAB       = 9
	CharLF        = 10
	CharFF        = 12
	CharCR        = 13
	CharSPACE     = 32
	CharBANG      = 33
	CharDQ        = 34
	CharHASH      = 35
	CharAMPERSAND = 38
	CharSQ        = 39
	CharMINUS     = 45
	CharSLASH     = 47
	CharCOLON     = 58
	CharSEMICOLON = 59
	CharLT        = 60
	CharEQ        = 61
	CharGT        = 62
	CharQUESTION  = 63

	Char0 = 48
	Char9 = 57

	CharA = 65
	CharF = 70
	CharX = 88
	CharZ = 90

	CharLBRACKET  = 91
	CharBACKSLASH = 92
	CharRBRACKET  = 93

	CharLowerA = 97
	CharLowerF = 102
	CharLowerX = 120
	CharLowerZ = 122

	CharLBRACE = 123
	CharRBRACE = 125
	CharNBSP   = 160
	CharBT     = 96
)

// IsWhitespace checks if a character code represents whitespace
func IsWhitespace(code int) bool {
	return (code >= CharTAB && code <= CharSPACE) || code == CharNBSP
}

// IsDigit checks if a character code represents a digit
func IsDigit(code int) bool {
	return Char0 <= code && code <= Char9
}

// IsAsciiLetter checks if a character code represents an ASCII letter
func IsAsciiLetter(code int) bool {
	return (code >= CharLowerA && code <= CharLowerZ) || (code >= CharA && code <= CharZ)
}

// IsAsciiHexDigit checks if a character code represents a hexadecimal digit
func IsAsciiHexDigit(code int) bool {
	return (code >= CharLowerA && code <= CharLowerF) || (code >= CharA && code <= CharF) || IsDigit(code)
}

// IsQuote checks if a character code represents a quote character
func IsQuote(code int) bool {
	return code == CharSQ || code == CharDQ || code == CharBT
}
