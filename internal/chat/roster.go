package chat

// famousBoxers backs the "Surprise me" action: legends, modern-era greats,
// and current stars.
var famousBoxers = []string{
	"Mike Tyson",

	"Floyd Mayweather",
	"Manny Pacquiao",
	"Oscar De La Hoya",
	"Roy Jones Jr",
	"Bernard Hopkins",
	"Shane Mosley",

	"Canelo Alvarez",
	"Anthony Joshua",
	"Tyson Fury",
	"Deontay Wilder",
	"Gennady Golovkin",
	"Terence Crawford",
	"Errol Spence Jr",
	"Naoya Inoue",
	"Oleksandr Usyk",
	"Vasyl Lomachenko",
	"Ryan Garcia",
	"Shakur Stevenson",
	"Tank Davis",
	"Jake Paul",
}
