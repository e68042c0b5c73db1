package dto

// Choice is one selectable button: a label shown to the user and the opaque
// id delivered back when it is pressed.
type Choice struct {
	Label string `json:"label"`
	ID    string `json:"id"`
}

// Reply describes the outbound response for the chat platform to render:
// a text body with optional lightweight markup plus choice rows.
type Reply struct {
	Text        string     `json:"text"`
	Markdown    bool       `json:"markdown"`
	Choices     [][]Choice `json:"choices,omitempty"`
	EditInPlace bool       `json:"editInPlace"`
}

func TextReply(text string) Reply {
	return Reply{Text: text, Markdown: true}
}
