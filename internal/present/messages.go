// Package present turns validation outcomes into what a player sees.
package present

import (
	"fmt"
	"strings"

	"github.com/robalobadob/wordscramble/internal/game"
)

// Message is a user-facing title and body for one outcome.
type Message struct {
	Title string `json:"title"`
	Body  string `json:"message"`
}

// For returns the message for o. Accepted outcomes have no message.
func For(o game.Outcome, baseWord string) Message {
	if o.Accepted {
		return Message{}
	}
	switch o.Reason {
	case game.ReasonSameAsBase:
		return Message{Title: "Same word entered!", Body: "You can't just enter the same word, you know!"}
	case game.ReasonNotSpellable:
		return Message{Title: "Word not possible", Body: fmt.Sprintf("You can't spell that word from %s", strings.ToLower(baseWord))}
	case game.ReasonAlreadyUsed:
		return Message{Title: "Word used already", Body: "Be more original!"}
	case game.ReasonTooShort:
		return Message{Title: "Word is too short!", Body: "Please Enter a valid word!"}
	case game.ReasonNotARealWord:
		return Message{Title: "Word not recognised", Body: "You can't just make them up, you know!"}
	default:
		return Message{Title: "Word rejected", Body: string(o.Reason)}
	}
}
