package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Печатает bcrypt хэш для ADMIN_PASSWORD_HASH. Пароль берется из аргумента или stdin.
func main() {
	password := ""
	if len(os.Args) > 1 {
		password = os.Args[1]
	} else {
		fmt.Fprint(os.Stderr, "Password: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			log.Fatalf("Error reading password: %v", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}

	if password == "" {
		log.Fatal("Password must not be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Error hashing password: %v", err)
	}

	fmt.Printf("ADMIN_PASSWORD_HASH=%s\n", hash)
}
