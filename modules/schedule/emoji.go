package schedule

// MaxReactions is the number of distinct reactions Discord allows on one
// message, which caps how many candidate dates a vote can offer.
const MaxReactions = 20

// reactionEmojis holds the vote affordances in candidate index order: the
// nine keycap digits, then regional indicators A-Z, truncated to the Discord
// limit. Index order is the contract the tally relies on.
var reactionEmojis = buildReactionEmojis()

func buildReactionEmojis() []string {
	emojis := make([]string, 0, 9+26)

	for i := 1; i <= 9; i++ {
		emojis = append(emojis, string(rune('0'+i))+"️⃣")
	}

	const regionalIndicatorA = 0x1F1E6
	for i := 0; i < 26; i++ {
		emojis = append(emojis, string(rune(regionalIndicatorA+i)))
	}

	return emojis[:MaxReactions]
}
