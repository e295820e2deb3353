package domain

// Role はチャット上の発言者を表します。
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Valid は Role が既知の値かどうかを返します。
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleModel
}

// ChatMessage はトランスクリプトに追加された1件の発言です。追加後は変更しません。
type ChatMessage struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Transcript は1セッション分の発言履歴です。追加のみ可能で、順序は追加順を保ちます。
type Transcript struct {
	messages []ChatMessage
}
