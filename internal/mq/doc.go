// Package mq публикует события run в RabbitMQ.
//
// Структура:
//   - connection.go — соединение с RabbitMQ (повторные попытки подключения, закрытие)
//   - topology.go   — объявление exchange, queues, bindings
//   - publisher.go  — публикация событий
//
// Типы сообщений:
//   - project.completed — проект обработан (выполнен или взят из кэша)
//   - run.completed     — run завершён (успешно или с ошибкой)
//
// Exchange:
//   - zenith.events (topic)
//
// Публикация необязательна: без RABBITMQ_URL события не отправляются,
// ошибки публикации никогда не прерывают run.
package mq
