package emojis

import "strconv"

// The keypad alphabet labeling menu entries 0-9
var list = map[string]string{
	"0": `0⃣`,
	"1": `1⃣`,
	"2": `2⃣`,
	"3": `3⃣`,
	"4": `4⃣`,
	"5": `5⃣`,
	"6": `6⃣`,
	"7": `7⃣`,
	"8": `8⃣`,
	"9": `9⃣`,
}

// revlist is the reverse version of list
var revlist map[string]string

func init() {
	revlist = make(map[string]string, len(list))
	for k, v := range list {
		revlist[v] = k
	}
}

// FromNumber returns the keypad emoji for the index
func FromNumber(number int) string {
	return list[strconv.Itoa(number)]
}

// ToNumber returns the number that corresponds to
// the emoji, or -1 for anything outside the keypad
func ToNumber(emoji string) int {
	v, err := strconv.Atoi(revlist[emoji])
	if err != nil {
		v = -1
	}
	return v
}
