package value

import "strings"

// FormatBoolean maps "true"/"false" (trimmed, any case) to display words.
//
// Options:
//   - "" : "true" / "false"
//   - "yesno" : "yes" / "no"
//   - "onoff" : "on" / "off"
//   - "empty" : "yes" when raw is blank, otherwise "no"
//
// Input that is neither true nor false, and unknown options, yield "".
func FormatBoolean(raw, option string) string {
	option = strings.TrimSpace(option)
	if option == "empty" {
		if strings.TrimSpace(raw) == "" {
			return "yes"
		}
		return "no"
	}

	var words [2]string
	switch option {
	case "":
		words = [2]string{"true", "false"}
	case "yesno":
		words = [2]string{"yes", "no"}
	case "onoff":
		words = [2]string{"on", "off"}
	default:
		return ""
	}

	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true":
		return words[0]
	case "false":
		return words[1]
	default:
		return ""
	}
}
