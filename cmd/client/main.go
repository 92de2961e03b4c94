// Command client exercises a running assistant: it posts one reply request
// or follows the websocket event feed.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Nackshayan/MultilingualChatAssistant/types"
	"github.com/Nackshayan/MultilingualChatAssistant/websocket"
)

func main() {
	addr := flag.String("addr", "http://localhost:8080", "assistant API base URL")
	wsURL := flag.String("ws", "ws://localhost:8085/ws", "event feed URL")
	watch := flag.Bool("watch", false, "follow the event feed instead of sending a request")

	incoming := flag.String("incoming", "", "incoming message text")
	userReply := flag.String("reply", "", "your draft reply")
	userLang := flag.String("user-lang", "en", "your language code")
	sendLang := flag.String("send-lang", "", "recipient language code (defaults to user language)")
	tone := flag.String("tone", "auto", "tone override (auto, formal, friendly, humorous, empathetic, casual, neutral, angry, sad)")
	flag.Parse()

	if *watch {
		watchEvents(*wsURL)
		return
	}

	req := types.ReplyRequest{
		IncomingText: *incoming,
		UserReply:    *userReply,
		UserLang:     types.LanguageCode(*userLang),
		SendLang:     types.LanguageCode(*sendLang),
		ToneOverride: types.ParseTone(*tone),
	}
	body, _ := json.Marshal(req)

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Post(*addr+"/api/reply", "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Fprintf(os.Stderr, "request failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		fmt.Println(string(raw))
		return
	}
	fmt.Println(pretty.String())
}

// watchEvents prints every pipeline event until interrupted.
func watchEvents(url string) {
	client, err := websocket.NewReconnectingClient(url)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bad websocket url: %v\n", err)
		os.Exit(1)
	}

	client.SetOnMessage(func(msg []byte) {
		var event types.RunEvent
		if err := json.Unmarshal(msg, &event); err != nil {
			fmt.Println(string(msg))
			return
		}
		line := fmt.Sprintf("[%s] %s %s", event.Type, event.Timestamp, event.Message)
		if event.Result != nil {
			line += fmt.Sprintf(" intent=%s tone=%s reply=%q",
				event.Result.Intent, event.Result.Tone, event.Result.FinalReply)
		}
		fmt.Println(line)
	})

	if err := client.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "connect failed, retrying: %v\n", err)
	}
	defer client.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
}
