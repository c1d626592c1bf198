package constant

const (
	// Sent verbatim when the engine refuses a question.
	RefusalReply = "I cannot answer this based on the book. Try rephrasing your question or ask about a topic the book covers."

	// Sent when an infrastructure failure prevents answering. The user is
	// never charged a credit for these.
	ErrorReply = "Sorry, something went wrong on my side. Please try again in a moment."

	TrialExhaustedReply = `You've used all your free questions!

To keep asking about the book, choose a plan:
1. Credit Pack (100 questions)
2. Monthly Unlimited

Reply with "upgrade" to get a payment link.`

	DailyLimitReply = "You've reached today's question limit. Your quota resets at midnight, see you tomorrow!"

	RenewalReply = `Your plan has ended or run out of questions.

To keep asking about the book, renew your access:
1. Credit Pack (100 questions)
2. Monthly Unlimited

Reply with "upgrade" to get a payment link.`

	TrialWarningSuffix = "\n\n(You have %d free questions left. Reply \"upgrade\" anytime to unlock unlimited access.)"

	UpgradePrompt = `Choose your plan:
1. Credit Pack (%d questions) - Rp%s
2. Monthly Unlimited - Rp%s

Reply "1" or "2" and I'll send a payment link.`

	PaymentLinkReply = "Here's your payment link:\n%s\n\nOnce payment is confirmed your access is activated automatically."

	PaymentSettledReply = "Payment received! Your access is active. Ask away 📖"

	UnsupportedMessageReply = "I can only read text messages for now. Send your question as plain text."

	CitationHeader = "\n\n📚 Sources:"
)
