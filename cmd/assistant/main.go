// Command assistant runs the reply pipeline servers: the HTTP API and the
// websocket event feed.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Nackshayan/MultilingualChatAssistant/api"
	"github.com/Nackshayan/MultilingualChatAssistant/classifier"
	"github.com/Nackshayan/MultilingualChatAssistant/config"
	"github.com/Nackshayan/MultilingualChatAssistant/lexicon"
	"github.com/Nackshayan/MultilingualChatAssistant/llm"
	"github.com/Nackshayan/MultilingualChatAssistant/logger"
	"github.com/Nackshayan/MultilingualChatAssistant/reply"
	"github.com/Nackshayan/MultilingualChatAssistant/slang"
	"github.com/Nackshayan/MultilingualChatAssistant/translate"
	"github.com/Nackshayan/MultilingualChatAssistant/types"
	"github.com/Nackshayan/MultilingualChatAssistant/websocket"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML configuration file")
	apiPort := flag.Int("port", 0, "API port (overrides API_PORT)")
	wsPort := flag.Int("ws-port", 0, "websocket port (overrides WS_PORT)")
	flag.Parse()

	env, err := config.LoadEnv()
	if err != nil {
		logger.Fatal("failed to load environment", err)
	}
	if level, err := logger.ParseLevel(env.LogLevel); err == nil {
		logger.SetGlobalLevel(level)
	}
	logger.SetGlobalComponent("assistant")

	if *configPath == "" {
		*configPath = env.ConfigPath
	}
	cfg, err := config.Load(*configPath, env)
	if err != nil {
		logger.Fatal("failed to load configuration", err)
	}

	if *apiPort == 0 {
		*apiPort = env.APIPort
	}
	if *wsPort == 0 {
		*wsPort = env.WSPort
	}

	tables, err := lexicon.Load()
	if err != nil {
		logger.Fatal("failed to load lexicon tables", err)
	}

	chain := buildChain(cfg, env, tables)
	translator := buildTranslator(cfg)

	events := websocket.NewEventServer(*wsPort)
	if err := events.Start(); err != nil {
		logger.Fatal("failed to start event server", err)
	}
	defer events.Stop()

	engine := reply.NewEngine(
		reply.WithTables(tables),
		reply.WithChain(chain),
		reply.WithSlang(slang.New(tables, slang.NewRand(cfg.Pipeline.RandSeed))),
		reply.WithTranslator(translator),
		reply.WithEventSink(events),
		reply.WithDefaultLanguages(
			types.LanguageCode(cfg.Pipeline.DefaultUserLang),
			types.LanguageCode(cfg.Pipeline.DefaultSendLang),
		),
	)

	server := api.NewServer(*apiPort, engine, chain)
	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("api server failed", err)
		}
	}()

	events.BroadcastStatus("assistant", "pipeline ready")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Stop(ctx); err != nil {
		logger.Error("api shutdown failed", err)
	}
}

// buildChain assembles the classification chain: the optional model strategy
// first, the rule engine always last.
func buildChain(cfg *config.Config, env *config.EnvConfig, tables *lexicon.Tables) *classifier.Chain {
	rules := classifier.NewRuleEngine(tables)
	if !cfg.Classifier.UseModel {
		return classifier.NewChain(rules)
	}

	var client llm.Client
	var err error
	switch cfg.Classifier.Provider {
	case "googleai":
		client, err = llm.NewGoogleAI(context.Background(), env.GoogleAPIKey, cfg.Classifier.Model)
	default:
		client, err = llm.NewFromEnv()
	}
	if err != nil {
		logger.Warnf("model classifier unavailable, using rules only: %v", err)
		return classifier.NewChain(rules)
	}
	return classifier.NewChain(classifier.NewModelStrategy(client), rules)
}

// buildTranslator picks the outbound translation provider.
func buildTranslator(cfg *config.Config) translate.Translator {
	switch cfg.Translator.Provider {
	case "http":
		t, err := translate.NewHTTP(cfg.Translator.URL, translate.HTTPOptions{
			APIKey:       cfg.Translator.APIKey,
			Timeout:      time.Duration(cfg.Translator.TimeoutSeconds) * time.Second,
			MaxAttempts:  cfg.Translator.MaxAttempts,
			BreakerTrips: cfg.Translator.BreakerTrips,
			BreakerReset: time.Duration(cfg.Translator.BreakerResetMS) * time.Millisecond,
		})
		if err != nil {
			logger.Warnf("http translator unavailable, using identity: %v", err)
			return translate.Identity{}
		}
		return t
	case "llm":
		client, err := llm.NewFromEnv()
		if err == nil {
			if t, terr := translate.NewLLM(client); terr == nil {
				return t
			}
		}
		logger.Warnf("llm translator unavailable, using identity: %v", err)
		return translate.Identity{}
	default:
		return translate.Identity{}
	}
}
