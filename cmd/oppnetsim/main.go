// Command oppnetsim runs controlled-replication forwarding simulations of a
// delay-tolerant network.
package main

func main() {
	Execute()
}
