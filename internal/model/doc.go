// Package model defines the data structures shared by the icon inference
// engine and the tools built around it.
//
// # Icon
//
// Icon is a decoded candidate image together with where it came from:
//
//	icon := model.NewIcon("https://example.com/apple-touch-icon.png", "png", rgba)
//	fmt.Println(icon.Name)   // "example.com"
//	fmt.Println(icon.Size()) // "180x180"
//
// # Ranking
//
// Icons are ranked by pixel area. Best picks the largest, breaking ties by
// position so that the first-discovered icon wins:
//
//	winner := model.Best(icons)
//
// # Size
//
// Size holds pixel dimensions and parses the "WxH" notation used by
// configuration files:
//
//	size, err := model.ParseSize("256x256")
package model
