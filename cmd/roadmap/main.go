// Command roadmap compiles the versioning and backlog documents from the
// command line.
package main

func main() {
	Execute()
}
