// 18 Oct 2026

package main

func main() {
	Execute()
}
