// Command fmq queries FileMaker Server databases through the XML
// publishing interface.
package main

func main() {
	execute()
}
