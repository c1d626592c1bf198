package rag

import "fmt"

// CanonicalRefusal is the exact wording the synthesizer is told to emit
// when the context cannot answer the question. The verifier's phrase set
// must match it; DefaultRefusalPhrases contains "cannot answer" so the
// default configuration is self-consistent.
const CanonicalRefusal = "I cannot answer this based on the book"

// BuildSystemConstraints renders the system instruction sent with every
// synthesis call. The constraints restrict the synthesizer to the
// supplied context only and pin the refusal wording the verifier detects.
func BuildSystemConstraints(bookTitle string) string {
	return fmt.Sprintf(`You are an AI assistant that answers questions ONLY based on the book '%s'.

CRITICAL RULES:
1. Answer ONLY using information explicitly stated in the provided context
2. NEVER add information from your general knowledge
3. If the context doesn't contain the answer, say "%s"
4. Always cite your sources using [1], [2], etc. matching the context numbers
5. Keep answers concise and accurate

Your goal is to help readers understand the book content, not to provide general knowledge.`, bookTitle, CanonicalRefusal)
}

// BuildUserPrompt renders the question plus the assembled context block.
func BuildUserPrompt(question string, contextText string) string {
	return fmt.Sprintf(`Question: %s

Context from the book:
%s

Instructions:
- Answer the question using ONLY the information from the context above
- Include citations [1], [2], etc. for each claim
- If the context doesn't fully answer the question, say so clearly

Answer:`, question, contextText)
}
