package main

import "strconv"

func itoa(i int) string { return strconv.Itoa(i) }

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
