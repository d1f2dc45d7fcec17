package agent

import "fmt"

// DefaultSystemPrompt is used when Config.SystemPrompt is empty.
const DefaultSystemPrompt = "You are a precise problem solver. " +
	"Use tools when arithmetic is nontrivial. " +
	"Return a final answer with a short explanation and no hidden reasoning steps."

const planningPrompt = "Propose one difficult, precise question that tests reasoning ability. " +
	"Output only the question text, with no preamble and no answer."

func solvePrompt(question string) string {
	return fmt.Sprintf("Question to solve: %s\n\n"+
		"Solve the question. Use the available tools when they help. "+
		"Reply with the final answer and a short explanation.", question)
}

func reflectPrompt(question, answer string) string {
	return fmt.Sprintf("Review the candidate answer against the original question.\n\n"+
		"Question: %s\n"+
		"Candidate answer: %s\n\n"+
		"Start your reply with \"VERDICT: agree\" or \"VERDICT: disagree\", "+
		"then give a short justification.", question, answer)
}

func correctivePrompt(critique string) string {
	return fmt.Sprintf("The review disagreed with the candidate answer.\n\n"+
		"Critique: %s\n\n"+
		"Provide a corrected final answer.", critique)
}
