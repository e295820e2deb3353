package domain

// Append は発言を末尾に追加し、追加後の件数を返します。
func (t *Transcript) Append(role Role, text string) int {
	t.messages = append(t.messages, ChatMessage{Role: role, Text: text})
	return len(t.messages)
}

// Len は発言の件数を返します。
func (t *Transcript) Len() int {
	return len(t.messages)
}

// Last は最後の発言を返します。空の場合は false です。
func (t *Transcript) Last() (ChatMessage, bool) {
	if len(t.messages) == 0 {
		return ChatMessage{}, false
	}
	return t.messages[len(t.messages)-1], true
}

// Messages は内部スライスを共有しないコピーを返します。
func (t *Transcript) Messages() []ChatMessage {
	out := make([]ChatMessage, len(t.messages))
	copy(out, t.messages)
	return out
}
