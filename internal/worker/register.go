package worker

import (
	"github.com/hibiken/asynq"
	"github.com/keiichiro05/LO-converter/internal/config"
	"github.com/redis/go-redis/v9"
)

// TaskTypeConvert is the asynq task type for List Order conversions.
const TaskTypeConvert = "listorder:convert"

func RegisterHandlers(mux *asynq.ServeMux, rdb *redis.Client, cfg *config.Config, rules *config.Rules) {
	// Register conversion task handler
	converter := NewConversionTaskHandler(rdb, cfg, rules)
	mux.HandleFunc(TaskTypeConvert, converter.Handle)
}
