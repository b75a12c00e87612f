package message

const (
	BlockTypeSection = "section"
	TextTypeMarkdown = "mrkdwn"
)

// Document is the Slack message built for a single event.
// This is made to match the block kit payload accepted by incoming webhooks.
type Document struct {
	Blocks []Block `json:"blocks"`
}

// Block is one renderable unit within a Document.
type Block struct {
	Type string `json:"type"`
	Text Text   `json:"text"`
}

// Text is the formatted text object of a section block.
type Text struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func markdownSection(text string) Block {
	return Block{
		Type: BlockTypeSection,
		Text: Text{Type: TextTypeMarkdown, Text: text},
	}
}
