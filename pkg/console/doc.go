// Package console is the interactive management surface of the controller.
//
// Commands keep the names operators know from the browser console
// (enableHandler, listHandlers, ...) and also accept kebab-case aliases
// (enable-handler, list-handlers, ...). Both "enableHandler h1" and
// "enableHandler('h1')" are understood.
package console
