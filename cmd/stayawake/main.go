// StayAwake keeps the session awake by nudging an idle cursor and holding
// a platform power lock.
package main

func main() {
	Execute()
}
