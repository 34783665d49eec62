// todo-client is a line-oriented terminal client for the todo service: it
// forwards each stdin line as one request and prints the single response
// read back. Typing "quit" (or EOF) disconnects.
package main

import (
	"bufio"
	"fmt"
	"log"
	"net"
	"os"

	"github.com/spf13/pflag"
)

const responseBufferSize = 4096

func main() {
	addr := pflag.String("addr", "localhost:7769", "server address")
	pflag.Parse()

	conn, err := net.Dial("tcp", *addr)
	if err != nil {
		log.Fatalf("failed to connect to %s: %v", *addr, err)
	}
	defer conn.Close()

	fmt.Println("Connected to the server.")

	stdin := bufio.NewScanner(os.Stdin)
	buf := make([]byte, responseBufferSize)

	for {
		fmt.Print("Enter message: ")
		if !stdin.Scan() {
			return
		}

		message := stdin.Text()
		if message == "quit" {
			return
		}

		if _, err := fmt.Fprintf(conn, "%s\n", message); err != nil {
			log.Fatalf("failed to send request: %v", err)
		}

		// One response per request; responses are not newline framed
		// because listings contain newlines, so read a single buffer.
		n, err := conn.Read(buf)
		if err != nil {
			log.Fatalf("connection lost: %v", err)
		}

		fmt.Printf("The server replied <%s>\n", buf[:n])
	}
}
