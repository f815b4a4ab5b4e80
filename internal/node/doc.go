// Package node выделяет worker-ноды для tracks.
//
// Provider — узкий интерфейс внешнего планировщика worker-нод:
// Acquire блокируется, пока не освободится нода с запрошенной меткой,
// Release возвращает ноду в пул. Track получает ровно одну ноду на всё
// время жизни и не мигрирует между нодами.
//
// Pool — локальная реализация с фиксированной ёмкостью на метку.
package node
