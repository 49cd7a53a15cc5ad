package main

import "github.com/phrazzld/folem-api/internal/domain"

// builtinCatalog is the symbol set the board ships with. Labels are
// Albanian; the child taps these to build sentences. Caregivers extend
// it per profile with custom symbols.
var builtinCatalog = []domain.CatalogSymbol{
	// Core words
	{ID: "want", Label: "dua", Emoji: "🙏", Category: "core"},
	{ID: "more", Label: "më shumë", Emoji: "➕", Category: "core"},
	{ID: "stop", Label: "ndalo", Emoji: "✋", Category: "core"},
	{ID: "yes", Label: "po", Emoji: "👍", Category: "core"},
	{ID: "no", Label: "jo", Emoji: "👎", Category: "core"},
	{ID: "help", Label: "ndihmë", Emoji: "🆘", Category: "core"},
	{ID: "me", Label: "unë", Emoji: "🙋", Category: "core"},
	{ID: "you", Label: "ti", Emoji: "👉", Category: "core"},

	// Needs
	{ID: "water", Label: "ujë", Emoji: "💧", Category: "needs"},
	{ID: "eat", Label: "ha", Emoji: "🍽️", Category: "needs"},
	{ID: "bread", Label: "bukë", Emoji: "🍞", Category: "needs"},
	{ID: "milk", Label: "qumësht", Emoji: "🥛", Category: "needs"},
	{ID: "sleep", Label: "gjumë", Emoji: "😴", Category: "needs"},
	{ID: "toilet", Label: "tualet", Emoji: "🚽", Category: "needs"},
	{ID: "pain", Label: "dhemb", Emoji: "🤕", Category: "needs"},

	// Feelings
	{ID: "happy", Label: "i lumtur", Emoji: "😊", Category: "feelings"},
	{ID: "sad", Label: "i trishtuar", Emoji: "😢", Category: "feelings"},
	{ID: "angry", Label: "i zemëruar", Emoji: "😠", Category: "feelings"},
	{ID: "tired", Label: "i lodhur", Emoji: "🥱", Category: "feelings"},
	{ID: "scared", Label: "i frikësuar", Emoji: "😨", Category: "feelings"},
	{ID: "love", Label: "të dua", Emoji: "❤️", Category: "feelings"},

	// People
	{ID: "mom", Label: "mami", Emoji: "👩", Category: "people"},
	{ID: "dad", Label: "babi", Emoji: "👨", Category: "people"},
	{ID: "grandma", Label: "gjyshja", Emoji: "👵", Category: "people"},
	{ID: "grandpa", Label: "gjyshi", Emoji: "👴", Category: "people"},
	{ID: "teacher", Label: "mësuesja", Emoji: "🧑‍🏫", Category: "people"},

	// Activities
	{ID: "play", Label: "luaj", Emoji: "🧸", Category: "activities"},
	{ID: "outside", Label: "jashtë", Emoji: "🌳", Category: "activities"},
	{ID: "music", Label: "muzikë", Emoji: "🎵", Category: "activities"},
	{ID: "book", Label: "libër", Emoji: "📖", Category: "activities"},
	{ID: "draw", Label: "vizatoj", Emoji: "🖍️", Category: "activities"},
	{ID: "home", Label: "shtëpi", Emoji: "🏠", Category: "activities"},
}
