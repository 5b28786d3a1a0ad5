package ui

// Quiet suppresses status and diagnostic output for the rest of the process's
// life. Fatal errors and data written directly to standard output still
// appear.
func Quiet() {
	op(opQuiet, "")
}
