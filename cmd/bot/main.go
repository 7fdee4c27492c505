package main

import (
	"fmt"
	"log"
	"os"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
)

// Helper bot that echoes chat and user ids, so CHAT_ID for the scraper's
// completion notification can be discovered.
func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Env file is not found")
	}

	botToken := os.Getenv("BOT_TOKEN")
	if botToken == "" {
		log.Fatal("BOT_TOKEN is not set")
	}

	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		log.Fatal("Error creating bot:", err)
	}

	log.Printf("Bot is authorized as: @%s", api.Self.UserName)

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60

	updates := api.GetUpdatesChan(updateConfig)

	log.Println("Bot is started! Send any message to discover your chat id...")

	for update := range updates {
		if update.Message == nil {
			continue
		}

		reply := fmt.Sprintf("Chat ID: %d\nUser ID: %d",
			update.Message.Chat.ID, update.Message.From.ID)

		msg := tgbotapi.NewMessage(update.Message.Chat.ID, reply)
		if _, err := api.Send(msg); err != nil {
			log.Printf("Error sending message: %v", err)
		}

		log.Printf("Echoed chat ID %d to user %d",
			update.Message.Chat.ID, update.Message.From.ID)
	}
}
