// Package translate localizes the messages produced by the simulator.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

var printer *message.Printer

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("sim16: locale: %v", err)
	}

	SetLanguage(locales...)
}

// SetLanguage selects the message language from a preference-ordered list
// of BCP 47 tags. An empty list selects en-US.
func SetLanguage(locales ...string) {
	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	printer = message.NewPrinter(message.MatchLanguage(locales...))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
