// meta/meta.go
package meta

// Iterations is the default number of select/expand/simulate/backpropagate cycles per move.
const Iterations = 10000

// Confidence is the default UCB exploration constant. Rewards lie in [0, 1],
// so exploration needs a large constant to compete with the average reward.
const Confidence = 50.0

// Temperature is the default sampling temperature of the training agent.
const Temperature = 1.0

// NumGames is the default number of games played by the match harness.
const NumGames = 5

// Port is the default listening port of the agent service.
const Port = "8080"
