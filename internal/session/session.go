package session

import (
	"encoding/json"
	"errors"
	"strconv"

	"f1-route-bot/internal/database"
	"f1-route-bot/internal/logger"

	"github.com/allegro/bigcache/v3"
)

func stateKey(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

func GetState(cache *bigcache.BigCache, userID int64) Chat {
	var chatState Chat

	b, err := cache.Get(stateKey(userID))
	if err != nil {
		if errors.Is(err, bigcache.ErrEntryNotFound) {
			logger.Info("No state in cache for " + stateKey(userID))
			chatState = Chat{
				PreviousState: database.MENU,
				CurrentState:  database.MENU,
			}
			return chatState
		}
	}
	err = json.Unmarshal(b, &chatState)
	if err != nil {
		logger.Warning("Error while decoding state", err)
	}

	return chatState
}

func (chatState *Chat) ChangeCache(cache *bigcache.BigCache, userID int64) error {
	data, err := json.Marshal(chatState)
	if err != nil {
		logger.Warning("Error while change state to cache", err)
		return err
	}

	err = cache.Set(stateKey(userID), data)
	logger.Debug("Write state to cache result")
	if err != nil {
		logger.Warning("Error while write state to cache", err)
	}

	return nil
}

func (chatState *Chat) ChangeCacheState(cache *bigcache.BigCache, userID int64, toState string) error {
	if chatState.CurrentState == toState {
		return nil
	}

	chatState.PreviousState = chatState.CurrentState
	chatState.CurrentState = toState

	return chatState.ChangeCache(cache, userID)
}

func (chatState *Chat) ChangeCacheAnonymous(cache *bigcache.BigCache, userID int64, anonymous bool) error {
	chatState.Anonymous = &anonymous

	return chatState.ChangeCache(cache, userID)
}

func (chatState *Chat) ChangeCacheCategory(cache *bigcache.BigCache, userID int64, category string) error {
	chatState.Category = category

	return chatState.ChangeCache(cache, userID)
}

// повернути майстра в меню: категорія скидається, вибір анонімності
// лишається - наступний цикл зможе пропустити це питання
func (chatState *Chat) ResetToMenu(cache *bigcache.BigCache, userID int64) error {
	chatState.Category = ""
	chatState.PreviousState = chatState.CurrentState
	chatState.CurrentState = database.MENU

	return chatState.ChangeCache(cache, userID)
}

// чи зроблено вибір анонімності (в поточному чи попередньому циклі)
func (chatState *Chat) HasAnonChoice() bool {
	return chatState.Anonymous != nil
}

func (chatState *Chat) IsAnonymous() bool {
	return chatState.Anonymous != nil && *chatState.Anonymous
}
