package main

import "github.com/Mantelijo/whale-alert/internal/svc"

func main() {
	svc.RunWhaleAlert()
}
