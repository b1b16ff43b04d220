package domain

// GenreLabel identifies one genre/mood bucket of the song catalog.
type GenreLabel string

const (
	LabelPopSmooth       GenreLabel = "Pop Smooth Vocals"
	LabelRockRaspy       GenreLabel = "Rock Raspy Vocals"
	LabelHighPitchClass  GenreLabel = "High Pitch Classical"
	LabelSoulfulBallads  GenreLabel = "Soulful Ballads"
	LabelEnergeticHipHop GenreLabel = "Energetic Hip-Hop/Rap"
	LabelSmoothJazz      GenreLabel = "Smooth Jazz Vocals"
	LabelHeavyMetal      GenreLabel = "Heavy Metal Screaming"
	LabelLowPitchBass    GenreLabel = "Low Pitch Bass Vocals"
	LabelAcoustic        GenreLabel = "Acoustic Unplugged"
	LabelFolk            GenreLabel = "Folk Traditional"
	LabelDanceEDM        GenreLabel = "Dance EDM Vocals"
	LabelSadMelancholic  GenreLabel = "Sad/Melancholic Vocals"
	LabelOpera           GenreLabel = "Opera Powerful Vocals"
)

// catalogOrder fixes the listing order of Labels.
var catalogOrder = []GenreLabel{
	LabelPopSmooth,
	LabelRockRaspy,
	LabelHighPitchClass,
	LabelSoulfulBallads,
	LabelEnergeticHipHop,
	LabelSmoothJazz,
	LabelHeavyMetal,
	LabelLowPitchBass,
	LabelAcoustic,
	LabelFolk,
	LabelDanceEDM,
	LabelSadMelancholic,
	LabelOpera,
}

// catalog is read-only after init. Always hand out copies.
var catalog = map[GenreLabel][]string{
	LabelPopSmooth: {
		"Blinding Lights - The Weeknd", "Shape of You - Ed Sheeran", "Vaseegara - Minnale",
		"As It Was - Harry Styles", "Someone You Loved - Lewis Capaldi", "Love Story - Taylor Swift",
		"Perfect - Ed Sheeran", "Thinking Out Loud - Ed Sheeran", "Unakkenna Venum Sollu - Yennai Arindhaal",
		"Ennavale Adi Ennavale - Kadhalan",
	},
	LabelRockRaspy: {
		"Smells Like Teen Spirit - Nirvana", "Highway to Hell - AC/DC", "In the End - Linkin Park",
		"Iris - Goo Goo Dolls", "Numb - Linkin Park", "Oru Maalai - Ghajini",
		"Back in Black - AC/DC", "It's My Life - Bon Jovi", "Zombie - The Cranberries",
		"Sweet Child O' Mine - Guns N' Roses",
	},
	LabelHighPitchClass: {
		"Nessun Dorma - Pavarotti", "Kurai Ondrum Illai - M.S. Subbulakshmi", "O Paalanhaare - Lagaan",
		"Vennilave Vennilave - Minsara Kanavu", "Ave Maria - Schubert", "Ava Enna - Vaaranam Aayiram",
		"Queen of the Night Aria - Mozart", "Paadariyen Padippariyen - Sindhu Bhairavi",
		"Vidai Kodu Engal Naadae - Kannathil Muthamittal", "Kanmani Anbodu - Guna",
	},
	LabelSoulfulBallads: {
		"Someone Like You - Adele", "Photograph - Ed Sheeran", "Hello - Lionel Richie",
		"Munbe Vaa - Sillunu Oru Kaadhal", "Kaathalae Kaathalae - 96", "Tujh Mein Rab Dikhta Hai - RNBDJ",
		"Jeene Laga Hoon - Ramaiya Vastavaiya", "Say You Won't Let Go - James Arthur",
		"All of Me - John Legend", "Engeyum Kadhal - Engeyum Kadhal",
	},
	LabelEnergeticHipHop: {
		"Lose Yourself - Eminem", "Bad Guy - Billie Eilish", "Sicko Mode - Travis Scott",
		"Surviva - Vivegam", "Venom - Eminem", "Vaathi Coming - Master",
		"Without Me - Eminem", "Rap God - Eminem", "DNA - Kendrick Lamar",
		"Aaluma Doluma - Vedalam",
	},
	LabelSmoothJazz: {
		"Fly Me to the Moon - Frank Sinatra", "Come Away With Me - Norah Jones",
		"Sway - Michael Bublé", "L-O-V-E - Nat King Cole", "Neela Kuyil - Ilaiyaraaja",
		"Feeling Good - Nina Simone", "Cheek to Cheek - Ella Fitzgerald",
		"Save the Last Dance for Me - Michael Bublé", "Kadhal Sadugudu - Alaipayuthey",
		"Summertime - Louis Armstrong",
	},
	LabelHeavyMetal: {
		"Enter Sandman - Metallica", "Painkiller - Judas Priest", "The Trooper - Iron Maiden",
		"Duality - Slipknot", "Killing in the Name - Rage Against the Machine",
		"Psychosocial - Slipknot", "Master of Puppets - Metallica",
		"Hallowed Be Thy Name - Iron Maiden", "Valhalla Calling Me - Miracle of Sound",
		"Before I Forget - Slipknot",
	},
	LabelLowPitchBass: {
		"The Sound of Silence - Disturbed", "Way Down We Go - Kaleo", "Believer - Imagine Dragons",
		"Fix You - Coldplay", "Can't Help Falling In Love - Elvis Presley",
		"Unakkul Naane - Pachaikili Muthucharam", "Let Her Go - Passenger",
		"Tennessee Whiskey - Chris Stapleton", "I See Fire - Ed Sheeran",
		"Kannodu Kanbathellam - Jeans",
	},
	LabelAcoustic: {
		"Tears in Heaven - Eric Clapton", "Wish You Were Here - Pink Floyd",
		"Hey There Delilah - Plain White T’s", "Thinking Out Loud - Ed Sheeran",
		"Idhu Varai - Goa", "Blackbird - The Beatles",
		"Hotel California (Acoustic) - Eagles", "Layla (Unplugged) - Eric Clapton",
		"Nenjukkul Peidhidum - Vaaranam Aayiram", "Yellow - Coldplay",
	},
	LabelFolk: {
		"Jimmiki Kammal - Velipadinte Pusthakam", "Cotton Fields - Lead Belly",
		"Oyatha Yathraiye - LKG", "The Gambler - Kenny Rogers", "Mayakkama Kalakkama - M.S. Viswanathan",
		"Ring of Fire - Johnny Cash", "Country Roads - John Denver",
		"Achy Breaky Heart - Billy Ray Cyrus", "Raasathi Raasathi - Thiruda Thiruda",
		"Take Me Home, Country Roads - John Denver",
	},
	LabelDanceEDM: {
		"Titanium - David Guetta ft. Sia", "Wake Me Up - Avicii", "Levitating - Dua Lipa",
		"Onnume Puriyala - Jigarthanda", "Animals - Martin Garrix",
		"Don't You Worry Child - Swedish House Mafia", "Clarity - Zedd ft. Foxes",
		"Stay - Zedd & Alessia Cara", "Faded - Alan Walker", "Call on Me - Eric Prydz",
	},
	LabelSadMelancholic: {
		"Yesterday - The Beatles", "Fix You - Coldplay", "Boulevard of Broken Dreams - Green Day",
		"Konjam Nilavu - Thiruda Thiruda", "Unakkenna Venum Sollu - Yennai Arindhaal",
		"Let Her Go - Passenger", "Someone Like You - Adele", "Tujhe Bhula Diya - Anjaana Anjaani",
		"My Immortal - Evanescence", "Tears Dry on Their Own - Amy Winehouse",
	},
	LabelOpera: {
		"O Sole Mio - Luciano Pavarotti", "Time to Say Goodbye - Andrea Bocelli & Sarah Brightman",
		"Amigos Para Siempre - Jose Carreras", "Va Pensiero - Giuseppe Verdi",
		"Nella Fantasia - Sarah Brightman", "Con te partirò - Andrea Bocelli",
		"Di Capua - O Sole Mio", "The Prayer - Andrea Bocelli & Celine Dion",
		"La Donna è Mobile - Verdi", "Casta Diva - Bellini",
	},
}

// Songs returns a copy of the example tracks for label.
func Songs(label GenreLabel) ([]string, bool) {
	songs, ok := catalog[label]
	if !ok {
		return nil, false
	}
	out := make([]string, len(songs))
	copy(out, songs)
	return out, true
}

// Labels lists every catalog label in a stable order.
func Labels() []GenreLabel {
	out := make([]GenreLabel, len(catalogOrder))
	copy(out, catalogOrder)
	return out
}
