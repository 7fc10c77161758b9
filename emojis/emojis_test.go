package emojis

import "testing"

func TestKeypadRoundTrip(t *testing.T) {
	for i := 0; i <= 9; i++ {
		emoji := FromNumber(i)
		if emoji == "" {
			t.Fatalf("no emoji for index %d", i)
		}
		if got := ToNumber(emoji); got != i {
			t.Fatalf("ToNumber(FromNumber(%d)) = %d", i, got)
		}
	}
}

func TestToNumberUnknownSymbols(t *testing.T) {
	for _, emoji := range []string{"", "🔟", "👍", "a", `0`} {
		if got := ToNumber(emoji); got != -1 {
			t.Fatalf("ToNumber(%q) = %d, want -1", emoji, got)
		}
	}
}
