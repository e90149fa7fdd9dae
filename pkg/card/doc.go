/*
Package card renders title results as shareable HTML cards.

The default card and its partials are embedded in the binary. A template
directory can be configured to override any of them: files matching
*.tmpl.html and *.part.html are parsed after the embedded set, and Refresh
reloads everything without a restart.

Templates can call cssColor, gradient, nl2br, qrDataURI, intentURL and join in
addition to the standard html/template functions.
*/
package card
