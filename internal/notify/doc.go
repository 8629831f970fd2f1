// Package notify delivers lead alerts to chat services. Delivery is
// best-effort: a Dispatcher queues alerts and a single worker hands each one
// to every configured Sender, logging and discarding failures.
package notify
