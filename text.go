package main

var AboutMe = `I build software for the web and the terminal, and I like understanding
	how things work a layer or two below where I'm standing. Most of my projects
	start as a small idea and become an excuse to learn a new language or tool.
	Away from the keyboard I'm usually at the gym, behind a camera, or planning
	the next project I probably don't have time for.`
