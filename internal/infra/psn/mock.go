package psn

import (
	"time"

	"pulse/internal/domain/entity"
)

const day = 24 * time.Hour

// MockGames is the authoritative fallback dataset for the PlayStation
// feed. Every PSN strategy (REST, scraper, static) serves this list when
// live data is unavailable, so the UI always has something to render.
func MockGames() []entity.GameRecord {
	now := time.Now()

	return []entity.GameRecord{
		{
			ID:             "spider-man-2",
			Name:           "Marvel's Spider-Man 2",
			Platform:       entity.PlatformPS5,
			Image:          "https://image.api.playstation.com/vulcan/ap/rnd/202306/1219/1c7b75d8ed9271516546560d219ad0b22ee0a263b4537bd8.png",
			LastPlayedDate: now.Add(-1 * day),
			TotalPlayTime:  "47h",
			TrophyProgress: entity.TrophyProgress{Platinum: 1, Gold: 5, Silver: 15, Bronze: 32},
			ExternalURL:    "https://psnprofiles.com/game/marvels-spider-man-2",

			// The head of the mock list doubles as the "now playing" card.
			IsCurrentlyPlaying: true,
		},
		{
			ID:             "baldurs-gate-3",
			Name:           "Baldur's Gate 3",
			Platform:       entity.PlatformPS5,
			Image:          "https://image.api.playstation.com/vulcan/ap/rnd/202308/0718/ac74d29195be5f0f2d9e54c9f7b1a4b4b46b7d36c7fa1c83.png",
			LastPlayedDate: now.Add(-3 * day),
			TotalPlayTime:  "134h",
			TrophyProgress: entity.TrophyProgress{Gold: 3, Silver: 12, Bronze: 25},
			ExternalURL:    "https://psnprofiles.com/game/baldurs-gate-3",
		},
		{
			ID:             "elden-ring",
			Name:           "Elden Ring",
			Platform:       entity.PlatformPS5,
			Image:          "https://image.api.playstation.com/vulcan/ap/rnd/202110/2000/phvVT0qZfcRms5qDAk0SI3CM.png",
			LastPlayedDate: now.Add(-7 * day),
			TotalPlayTime:  "98h",
			TrophyProgress: entity.TrophyProgress{Platinum: 1, Gold: 6, Silver: 9, Bronze: 26},
			ExternalURL:    "https://psnprofiles.com/game/elden-ring",
		},
		{
			ID:             "ff7-rebirth",
			Name:           "Final Fantasy VII Rebirth",
			Platform:       entity.PlatformPS5,
			Image:          "https://image.api.playstation.com/vulcan/ap/rnd/202312/0117/eb68ae9f-6e43-46fe-a0a1-eb5d77fc0f21.png",
			LastPlayedDate: now.Add(-10 * day),
			TotalPlayTime:  "76h",
			TrophyProgress: entity.TrophyProgress{Gold: 4, Silver: 18, Bronze: 29},
			ExternalURL:    "https://psnprofiles.com/game/final-fantasy-vii-rebirth",
		},
		{
			ID:             "god-of-war-ragnarok",
			Name:           "God of War Ragnarök",
			Platform:       entity.PlatformPS5,
			Image:          "https://image.api.playstation.com/vulcan/ap/rnd/202207/1210/42KOgY1sY2GaBaRJJDGWJcOJ.png",
			LastPlayedDate: now.Add(-14 * day),
			TotalPlayTime:  "52h",
			TrophyProgress: entity.TrophyProgress{Platinum: 1, Gold: 6, Silver: 11, Bronze: 28},
			ExternalURL:    "https://psnprofiles.com/game/god-of-war-ragnarok",
		},
		{
			ID:             "cyberpunk-2077",
			Name:           "Cyberpunk 2077",
			Platform:       entity.PlatformPS5,
			Image:          "https://image.api.playstation.com/vulcan/ap/rnd/202111/3013/4JeqT32tYNvbCN0mDO7FJvE3.png",
			LastPlayedDate: now.Add(-21 * day),
			TotalPlayTime:  "89h",
			TrophyProgress: entity.TrophyProgress{Platinum: 1, Gold: 4, Silver: 9, Bronze: 21},
			ExternalURL:    "https://psnprofiles.com/game/cyberpunk-2077",
		},
	}
}
