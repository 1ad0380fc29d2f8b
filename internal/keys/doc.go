// Package keys decodes raw terminal input into discrete key strokes.
//
// A Decoder reads one byte at a time from a Source (usually a
// terminal.Driver), buffers escape sequences and UTF-8 characters in a
// four byte buffer, and hands each completed KeyStroke to a Handler:
//
//	dec := keys.NewDecoder(driver,
//	    keys.WithStop(state.Done()),
//	    keys.WithInterruptHandler(keys.PolicyContinue, release),
//	)
//	err := dec.Listen(func(k keys.KeyStroke) bool {
//	    switch k.Kind {
//	    case keys.Up:
//	        state.MoveSelection(-1)
//	    case keys.Return:
//	        state.SelectCurrent()
//	        return false
//	    }
//	    return true
//	})
//
// The interrupt byte (Ctrl+C) never reaches the handler. It restores the
// terminal and then applies the configured InterruptPolicy.
package keys
