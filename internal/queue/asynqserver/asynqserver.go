package asynqserver

import (
	"github.com/aetherdigital/backend/internal/cache"
	"github.com/aetherdigital/backend/internal/config"
	"github.com/aetherdigital/backend/internal/queue/processor"
	"github.com/aetherdigital/backend/internal/queue/task"
	"github.com/aetherdigital/backend/internal/worker"

	"github.com/hibiken/asynq"
)

func New(cfg config.Cache, queueCfg config.Queue, workers *worker.Workers) (*asynq.Server, *asynq.ServeMux) {
	mux, queues := getQueues(workers)

	concurrency := queueCfg.Concurrency
	if concurrency <= 0 {
		concurrency = 10
	}

	srv := asynq.NewServer(
		RedisOptions(cfg),
		asynq.Config{
			Concurrency: concurrency,
			LogLevel:    asynq.ErrorLevel,
			Queues:      queues,
		},
	)

	return srv, mux
}

func RedisOptions(cfg config.Cache) asynq.RedisConnOpt {
	var opts asynq.RedisConnOpt
	if cfg.Type == cache.RedisTypeCluster {
		opts = asynq.RedisClusterClientOpt{Addrs: cfg.RedisCluster.Addresses, Password: cfg.RedisCluster.Password}
	} else {
		opts = asynq.RedisClientOpt{Addr: cfg.Redis.Address, Password: cfg.Redis.Password}
	}
	return opts
}

func getQueues(workers *worker.Workers) (*asynq.ServeMux, map[string]int) {
	mux := asynq.NewServeMux()
	mux.Handle(task.SendVerificationTaskName, processor.NewSendVerificationProcessor(workers))
	queues := map[string]int{
		task.SendVerificationQueueName: 1,
	}
	return mux, queues
}
