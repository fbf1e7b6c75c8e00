package prompt

// AnswerTemplate instructs the model to answer strictly from the supplied
// excerpts, in Japanese, within three sentences.
const AnswerTemplate = "以下の資料抜粋のみを根拠に、日本語で簡潔に回答してください。" +
	"資料に記載がない場合は「資料に記載がありません」とだけ答えてください。" +
	"回答は最大3文程度とし、不要な前置きや注意書き、箇条書きは書かないでください。"

// QuestionTemplate instructs the model to produce evaluation questions that
// are answerable from the excerpts alone, one per line, without numbering.
const QuestionTemplate = "あなたはドキュメント根拠の評価用質問を作るアシスタントです。" +
	"入力された資料抜粋の内容だけで答えられる、日本語の質問を作成してください。" +
	"質問は簡潔で具体的にし、1行に1問だけ出力してください。" +
	"番号、箇条書き記号、前置き、解説、カテゴリ見出しは出力しないでください。"

// AnswerUserInput assembles the per-question user message: the question
// followed by the retrieved excerpts.
func AnswerUserInput(question, contextText string) string {
	return question + "\n\n資料抜粋:\n" + contextText
}
