package rag

// Decision is the output of the grounding policy.
type Decision int

const (
	DecisionRefuse Decision = iota
	DecisionAnswer
)

// Decide is the grounding policy: a pure function over the retrieval
// outcome and the assembled context, evaluated strictly before the
// synthesizer is invoked so a certain refusal never pays generation cost.
// It returns the decision and, on refusal, the reason.
func Decide(retrieval *RetrievalResult, context *Context) (Decision, string) {
	if retrieval.Empty() {
		return DecisionRefuse, ReasonNoRelevantContent
	}
	if context.Empty() {
		return DecisionRefuse, ReasonBudgetUnusable
	}
	return DecisionAnswer, ""
}
