package core

// ResultKind indicates the kind of outcome a handler produced.
type ResultKind int

const (
	// ResultSuccess carries final response text.
	ResultSuccess ResultKind = iota

	// ResultNeedsFollowUp carries a prompt for one more turn of input.
	ResultNeedsFollowUp

	// ResultFailure carries a failure domain to be converted into a
	// fixed apologetic sentence.
	ResultFailure
)

// FailureKind identifies which collaborator domain failed, so the
// dispatcher can pick a domain-appropriate apology.
type FailureKind int

const (
	FailGeneric FailureKind = iota
	FailWeather
	FailCalendar
	FailCompletion
	FailSearch
	FailBrowser
)

// Apology returns the fixed user-visible sentence for this failure.
func (k FailureKind) Apology() string {
	switch k {
	case FailWeather:
		return "Unable to retrieve weather information."
	case FailCalendar:
		return "Sorry, I couldn't check your calendar."
	case FailCompletion:
		return "I'm experiencing some technical difficulties. Please try again later."
	case FailSearch:
		return "Sorry, I couldn't run that search."
	case FailBrowser:
		return "Sorry, I couldn't open that website."
	default:
		return "I'm experiencing some technical difficulties. Please try again later."
	}
}

// HandlerResult is the explicit outcome of an intent handler. Handlers
// never panic or return raw errors across the dispatch boundary; the
// three variants make the dispatcher's transitions total functions.
type HandlerResult struct {
	Kind ResultKind

	// Text is the final response when Kind is ResultSuccess.
	Text string

	// Prompt is spoken to the user when Kind is ResultNeedsFollowUp.
	Prompt string

	// Failure selects the apology when Kind is ResultFailure.
	Failure FailureKind
}

// Success returns a final-text result.
func Success(text string) HandlerResult {
	return HandlerResult{Kind: ResultSuccess, Text: text}
}

// NeedsFollowUp returns a result requesting one more turn of input.
func NeedsFollowUp(prompt string) HandlerResult {
	return HandlerResult{Kind: ResultNeedsFollowUp, Prompt: prompt}
}

// Failure returns a failed result for the given domain.
func Failure(kind FailureKind) HandlerResult {
	return HandlerResult{Kind: ResultFailure, Failure: kind}
}
